package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Request describes one completion call
type Request struct {
	System      string
	User        string
	Model       string
	Temperature float64 // [0, 1]
	MaxTokens   int
}

// Gateway is the only component that talks to the LLM provider. One call in,
// one outbound HTTP request, the raw text of the top completion choice out.
// No retries, no caching; failure classification is all it adds.
type Gateway interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type openAIGateway struct {
	client *openai.Client
}

// NewOpenAIGateway creates a gateway against an OpenAI-compatible
// chat-completion endpoint. baseURL may be empty for the default endpoint.
func NewOpenAIGateway(apiKey, baseURL string, timeout time.Duration) Gateway {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &openAIGateway{client: openai.NewClientWithConfig(cfg)}
}

func (g *openAIGateway) Complete(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
		{Role: openai.ChatMessageRoleUser, Content: req.User},
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Message: "empty choices in completion response"}
	}
	return resp.Choices[0].Message.Content, nil
}

func validateRequest(req Request) error {
	if req.System == "" {
		return &ProviderError{Message: "system prompt must not be empty"}
	}
	if req.Model == "" {
		return &ProviderError{Message: "model must not be empty"}
	}
	if req.Temperature < 0 || req.Temperature > 1 {
		return &ProviderError{Message: fmt.Sprintf("temperature out of range: %v", req.Temperature)}
	}
	if req.MaxTokens <= 0 {
		return &ProviderError{Message: fmt.Sprintf("maxTokens must be positive: %d", req.MaxTokens)}
	}
	return nil
}

// classifyError maps SDK errors onto the transport/provider taxonomy. An
// error payload in the response body counts as a provider error even when
// the transport status was 200-range.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return &TransportError{Err: err}
}
