package evaluation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Completer sends one prompt and returns the model's JSON answer as text.
type Completer interface {
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// LLMConfig configures the OpenAI-compatible chat client.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// IsEnabled returns true if an API key is configured.
func (c LLMConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ChatClient talks to OpenRouter (or any OpenAI-compatible API) in JSON mode.
type ChatClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewChatClient returns nil when the config has no API key, which callers treat
// as "LLM disabled".
func NewChatClient(cfg LLMConfig) *ChatClient {
	if !cfg.IsEnabled() {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &ChatClient{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

var errEmptyCompletion = errors.New("llm returned no choices")

func (c *ChatClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    c.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return stripCodeFence(resp.Choices[0].Message.Content), nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
