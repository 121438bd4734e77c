package llm

import "fmt"

// TransportError means the request never got a usable provider reply:
// network failure, timeout, or an unreadable response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError means the provider itself reported a failure: non-2xx
// status, quota, invalid key, or an error payload on a 200-range response.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("llm provider error: %s", e.Message)
}
