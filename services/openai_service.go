package services

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// The original deployment left completion calls unbounded; 60s keeps a hung
// upstream from pinning request goroutines forever.
const completionTimeout = 60 * time.Second

// Completer abstracts the text-completion provider used by the scan pipeline.
// Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService builds the completion client once at startup; the same
// instance is shared by every request. baseURL overrides the provider
// endpoint and is empty in production.
func NewOpenAIService(apiKey, model, baseURL string) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice's content, trimmed but otherwise untouched. The response is NOT
// parsed or validated against the requested schema; that is the caller's
// concern. No retries are performed.
func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		if isTimeout(err) {
			return "", NewScanError(UpstreamTimeout, "Analysis timed out.", err)
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", NewScanError(UpstreamHTTPError, "Analysis failed.", err)
		}
		return "", NewScanError(UpstreamUnavailable, "Analysis service unavailable.", err)
	}
	if len(resp.Choices) == 0 {
		return "", NewScanError(UpstreamMalformed, "Analysis returned no content.", nil)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
