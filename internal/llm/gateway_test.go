package llm

import (
	"context"
	"errors"
	"net"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	valid := Request{System: "system", User: "user", Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 600}
	require.NoError(t, validateRequest(valid))

	cases := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"empty system", func(r *Request) { r.System = "" }},
		{"empty model", func(r *Request) { r.Model = "" }},
		{"negative temperature", func(r *Request) { r.Temperature = -0.1 }},
		{"temperature above one", func(r *Request) { r.Temperature = 1.5 }},
		{"zero max tokens", func(r *Request) { r.MaxTokens = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := validateRequest(req)
			var provErr *ProviderError
			require.ErrorAs(t, err, &provErr)
		})
	}
}

func TestClassifyErrorProviderSide(t *testing.T) {
	apiErr := &openai.APIError{HTTPStatusCode: 429, Message: "rate limit exceeded"}

	err := classifyError(apiErr)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, 429, provErr.StatusCode)
	require.Contains(t, provErr.Message, "rate limit")
}

func TestClassifyErrorRequestSide(t *testing.T) {
	reqErr := &openai.RequestError{HTTPStatusCode: 503, Err: errors.New("service unavailable")}

	err := classifyError(reqErr)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, 503, provErr.StatusCode)
}

func TestClassifyErrorTransportSide(t *testing.T) {
	netErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}

	err := classifyError(netErr)

	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
	require.ErrorIs(t, err, netErr)
}

func TestMockGatewayRepeatsLastReply(t *testing.T) {
	gw := NewMockGateway(
		MockReply{Text: "first"},
		MockReply{Text: "second"},
	)

	ctx := context.Background()
	req := Request{System: "s", Model: "m", Temperature: 0.5, MaxTokens: 100}

	for i, want := range []string{"first", "second", "second", "second"} {
		got, err := gw.Complete(ctx, req)
		require.NoError(t, err)
		require.Equal(t, want, got, "call %d", i)
	}
	require.Equal(t, 4, gw.CallCount())
	require.Equal(t, "m", gw.Request(0).Model)
}
