package llm

import (
	"context"
	"sync"
)

// MockReply scripts one Complete call of a MockGateway
type MockReply struct {
	Text string
	Err  error
}

// MockGateway replays a scripted sequence of replies. Once the script is
// exhausted the last reply repeats. Safe for concurrent use.
type MockGateway struct {
	mu      sync.Mutex
	replies []MockReply
	calls   int
	reqs    []Request
}

// NewMockGateway creates a mock gateway with the given scripted replies
func NewMockGateway(replies ...MockReply) *MockGateway {
	return &MockGateway{replies: replies}
}

func (m *MockGateway) Complete(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.calls
	m.calls++
	m.reqs = append(m.reqs, req)

	if len(m.replies) == 0 {
		return "", &TransportError{Err: context.Canceled}
	}
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1
	}
	r := m.replies[idx]
	return r.Text, r.Err
}

// CallCount returns how many times Complete was invoked
func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Request returns the i-th recorded request
func (m *MockGateway) Request(i int) Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reqs[i]
}
