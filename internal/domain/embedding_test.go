package domain

import (
	"context"
	"errors"
	"testing"
)

// countingEmbedder returns a one-element vector per call and fails on the text in failOn.
type countingEmbedder struct {
	calls  []string
	failOn string
}

func (e *countingEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	e.calls = append(e.calls, text)
	if text == e.failOn {
		return EmbeddingResult{}, errors.New("provider refused")
	}
	return EmbeddingResult{
		Embedding:    []float32{float32(len(e.calls))},
		PromptTokens: 2,
		TotalTokens:  3,
	}, nil
}

func TestBatchFallback_KeepsOrderAndSumsTokens(t *testing.T) {
	inner := &countingEmbedder{}
	res, err := BatchFallback(context.Background(), inner, []string{"noir", "cats", "fog"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 3 {
		t.Fatalf("expected 3 embeddings, got %d", len(res.Embeddings))
	}
	for i, v := range res.Embeddings {
		if v[0] != float32(i+1) {
			t.Errorf("embedding[%d] = %v, want [%d]", i, v, i+1)
		}
	}
	if res.PromptTokens != 6 || res.TotalTokens != 9 {
		t.Errorf("tokens = %d/%d, want 6/9", res.PromptTokens, res.TotalTokens)
	}
}

func TestBatchFallback_StopsAtFirstError(t *testing.T) {
	inner := &countingEmbedder{failOn: "cats"}
	_, err := BatchFallback(context.Background(), inner, []string{"noir", "cats", "fog"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(inner.calls) != 2 {
		t.Errorf("calls = %v, want stop after the failing text", inner.calls)
	}
}

func TestBatchFallback_Empty(t *testing.T) {
	inner := &countingEmbedder{}
	res, err := BatchFallback(context.Background(), inner, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 0 || len(inner.calls) != 0 {
		t.Errorf("embeddings = %d, calls = %d", len(res.Embeddings), len(inner.calls))
	}
}
