package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"rewrite_server/core/domain"
	"rewrite_server/pkg/httputil"
	"rewrite_server/pkg/resilience"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMalformedCompletion marks a provider reply that arrived with a success
// status but cannot be turned into a RewriteResult.
var ErrMalformedCompletion = errors.New("malformed completion")

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	breaker     *resilience.CircuitBreaker
}

type ClientConfig struct {
	Provider   domain.ProviderConfig
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewClientWithConfig(cfg ClientConfig) *Client {
	p := cfg.Provider

	oc := openai.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		oc.BaseURL = p.BaseURL
	}
	oc.HTTPClient = cfg.HTTPClient
	if oc.HTTPClient == nil {
		oc.HTTPClient = httputil.NewOptimizedClient(httputil.OpenAIClientConfig(cfg.Timeout))
	}

	// go-openai drops a zero temperature from the request (omitempty), which
	// the API reads as 1.0. The smallest positive float32 is sent instead.
	temperature := p.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	c := &Client{
		client:      openai.NewClientWithConfig(oc),
		model:       p.Model,
		temperature: temperature,
	}
	if p.CircuitBreaker {
		c.breaker = resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("openai"))
	}
	return c
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// CompleteJSON issues exactly one chat completion with a system and a user
// message and JSON-object output. No retries.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var content string
	call := func() error {
		var err error
		content, err = c.completeJSON(ctx, systemPrompt, userPrompt)
		return err
	}

	if c.breaker == nil {
		return content, call()
	}
	if err := c.breaker.Execute(call); err != nil {
		if resilience.IsRejection(err) {
			return "", fmt.Errorf("openai circuit %s: %w", c.breaker.State(), err)
		}
		return "", err
	}
	return content, nil
}

func (c *Client) completeJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("client.CreateChatCompletion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}

// StatusCode extracts the provider's HTTP status from err, or 0 when the call
// never got a response.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
