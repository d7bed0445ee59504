package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/metrics"
)

// CompleterConfig holds chat completion settings.
type CompleterConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Completer sends single-turn prompts to a chat completion endpoint.
type Completer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewCompleter creates a chat completion client.
func NewCompleter(cfg *CompleterConfig) *Completer {
	return &Completer{
		client:      newClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete returns the text of the first choice. Token usage is recorded in metrics
// and in the request's domain.Usage.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		err = parseAPIError(ServiceChat, err)
		metrics.ObserveUpstream(ServiceChat, time.Since(start).Seconds(), err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		err = fmt.Errorf("empty completion response: %w", domain.ErrUpstreamMalformed)
		metrics.ObserveUpstream(ServiceChat, time.Since(start).Seconds(), err)
		return "", err
	}
	metrics.ObserveUpstream(ServiceChat, time.Since(start).Seconds(), nil)

	if resp.Usage.TotalTokens > 0 {
		metrics.UpstreamTokensTotal.WithLabelValues(ServiceChat, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.UpstreamTokensTotal.WithLabelValues(ServiceChat, "completion").Add(float64(resp.Usage.CompletionTokens))
	}
	domain.UsageFromContext(ctx).AddTokens(resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}
