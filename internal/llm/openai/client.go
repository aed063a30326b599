package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"resume-booster/internal/llm"
	"resume-booster/internal/shared/telemetry"
)

const defaultTimeout = 120 * time.Second

// Options configures the OpenAI client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient constructs a new OpenAI client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:   goopenai.NewClientWithConfig(cfg),
		model: strings.TrimSpace(opts.Model),
	}, nil
}

// AnalyzeResume sends one JSON-mode completion and parses the suggestions.
func (c *Client) AnalyzeResume(ctx context.Context, resumeText string) ([]llm.Suggestion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: llm.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: resumeText},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	telemetry.Info("llm.response", map[string]any{
		"model":             resp.Model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})

	if len(resp.Choices) == 0 {
		return nil, llm.ErrEmptyResponse
	}
	return llm.ParseSuggestions(resp.Choices[0].Message.Content)
}

var _ llm.Client = (*Client)(nil)
