package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/gotlmem"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.0-flash"
	// DefaultTimeout bounds a single translation round trip.
	DefaultTimeout = 60 * time.Second
)

// Client is a translation provider backed by a chat-completion API.
type Client struct {
	api    *openai.Client
	model  string
	apiKey string
}

// ClientConfig holds configuration for the Gemini-backed client.
type ClientConfig struct {
	APIKey  string        // required; without it every call fails with a config error
	Model   string        // default: gemini-2.0-flash
	BaseURL string        // default: Gemini's OpenAI-compatible endpoint
	Timeout time.Duration // default: 60s
}

// NewClient creates a Client. A missing API key is not an error here; it
// surfaces as a config-kind ProviderError on first use so callers can show
// a blocking message instead of failing at startup.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:    openai.NewClientWithConfig(config),
		model:  model,
		apiKey: cfg.APIKey,
	}
}

// Translate sends one string for translation and returns the trimmed result.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if c.apiKey == "" {
		return "", &gotlmem.ProviderError{
			Kind:    gotlmem.ErrKindConfig,
			Message: "API key is not configured",
		}
	}

	prompt := fmt.Sprintf(
		"Translate the following text to %s. Return ONLY the translation, nothing else. Keep any HTML tags intact.\n\nText: %s",
		gotlmem.GetLanguageName(targetLang), text)

	return c.complete(ctx, prompt)
}

// TestConnection verifies the credential with a minimal completion.
func (c *Client) TestConnection(ctx context.Context) error {
	if c.apiKey == "" {
		return &gotlmem.ProviderError{
			Kind:    gotlmem.ErrKindConfig,
			Message: "API key is not configured",
		}
	}
	_, err := c.complete(ctx, "Say OK")
	return err
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &gotlmem.ProviderError{
			Kind:    gotlmem.ErrKindFormat,
			Message: "response contained no choices",
		}
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", &gotlmem.ProviderError{
			Kind:    gotlmem.ErrKindFormat,
			Message: "response contained no text",
		}
	}
	return out, nil
}

// classify maps transport failures and API error statuses onto provider
// error kinds.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &gotlmem.ProviderError{
			Kind:    gotlmem.ErrKindProtocol,
			Message: fmt.Sprintf("API returned status %d", apiErr.HTTPStatusCode),
			Cause:   err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &gotlmem.ProviderError{
			Kind:    gotlmem.ErrKindProtocol,
			Message: fmt.Sprintf("request failed with status %d", reqErr.HTTPStatusCode),
			Cause:   err,
		}
	}
	return &gotlmem.ProviderError{
		Kind:    gotlmem.ErrKindTransport,
		Message: "request did not complete",
		Cause:   err,
	}
}

// Verify Client implements Provider
var _ Provider = (*Client)(nil)
