package openai

import (
	"context"
	"fmt"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/metrics"
)

// Embedder is an embedding provider using the OpenAI-compatible API.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// EmbedderConfig holds the embedding provider settings.
type EmbedderConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
}

// NewEmbedder creates an OpenAI-compatible embedding provider.
func NewEmbedder(cfg *EmbedderConfig) *Embedder {
	return &Embedder{
		client:     newClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
	}
}

// Embed implements domain.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{
		Embedding:    res.Embeddings[0],
		PromptTokens: res.PromptTokens,
		TotalTokens:  res.TotalTokens,
	}, nil
}

// BatchEmbed implements domain.BatchEmbedder with one API call. Output order matches texts.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		err = parseAPIError(ServiceEmbeddings, err)
		metrics.ObserveUpstream(ServiceEmbeddings, time.Since(start).Seconds(), err)
		return domain.BatchEmbeddingResult{}, err
	}
	if len(resp.Data) != len(texts) {
		err = fmt.Errorf("embedding count mismatch: got %d, want %d: %w",
			len(resp.Data), len(texts), domain.ErrUpstreamMalformed)
		metrics.ObserveUpstream(ServiceEmbeddings, time.Since(start).Seconds(), err)
		return domain.BatchEmbeddingResult{}, err
	}
	metrics.ObserveUpstream(ServiceEmbeddings, time.Since(start).Seconds(), nil)

	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })
	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = d.Embedding
	}

	if resp.Usage.TotalTokens > 0 {
		metrics.UpstreamTokensTotal.WithLabelValues(ServiceEmbeddings, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.UpstreamTokensTotal.WithLabelValues(ServiceEmbeddings, "total").Add(float64(resp.Usage.TotalTokens))
	}

	return domain.BatchEmbeddingResult{
		Embeddings:   out,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", parseAPIError(ServiceEmbeddings, err))
	}
	return nil
}
