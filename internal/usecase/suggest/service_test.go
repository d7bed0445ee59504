package suggest

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/usecase/candidate"
	"github.com/kailas-cloud/arttinder/internal/usecase/rank"
)

type stubGenerator struct {
	out   candidate.Outcome
	seeds []string
	ns    []int
}

func (g *stubGenerator) Generate(_ context.Context, seed string, n int) candidate.Outcome {
	g.seeds = append(g.seeds, seed)
	g.ns = append(g.ns, n)
	return g.out
}

func produced(terms ...string) candidate.Outcome {
	return candidate.Outcome{Terms: terms, Status: candidate.StatusProduced}
}

func TestSuggest_NoLLMUsesWordAssociation(t *testing.T) {
	llm := &stubGenerator{out: candidate.Outcome{Status: candidate.StatusUnavailable}}
	assoc := &stubGenerator{out: produced("alpine dawn", "Mountain Sunrise", "sunrise", "peak", "mountain glow", "summit")}
	svc := New(llm, assoc, rank.New(nil))

	res, err := svc.Suggest(context.Background(), "  mountain sunrise ", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Query != "mountain sunrise" {
		t.Errorf("expected trimmed query, got %q", res.Query)
	}
	if len(res.Suggestions) > 3 {
		t.Errorf("expected at most 3 suggestions, got %v", res.Suggestions)
	}
	for _, s := range res.Suggestions {
		if strings.EqualFold(s, "mountain sunrise") {
			t.Errorf("suggestions contain the query: %v", res.Suggestions)
		}
	}
	// Jaccard: "sunrise" 0.5, "mountain glow" 1/3, then stable order for zeros.
	want := []string{"sunrise", "mountain glow", "alpine dawn"}
	if !reflect.DeepEqual(res.Suggestions, want) {
		t.Errorf("got %v, want %v", res.Suggestions, want)
	}

	if llm.ns[0] != 30 || assoc.ns[0] != 40 {
		t.Errorf("unexpected generator sizes: llm=%v assoc=%v", llm.ns, assoc.ns)
	}
	if assoc.seeds[0] != "mountain sunrise" {
		t.Errorf("expected trimmed seed, got %q", assoc.seeds[0])
	}
}

func TestSuggest_LLMTermsFirstAndBannedDropped(t *testing.T) {
	llm := &stubGenerator{out: produced("cat wallpaper", "kitten", "cute cat photos")}
	assoc := &stubGenerator{out: produced("Kitten", "feline")}
	svc := New(llm, assoc, rank.New(nil))

	res, err := svc.Suggest(context.Background(), "cat", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All scores are 0, so merged order survives: llm first, dedup keeps "kitten".
	want := []string{"kitten", "feline"}
	if !reflect.DeepEqual(res.Suggestions, want) {
		t.Errorf("got %v, want %v", res.Suggestions, want)
	}
}

func TestSuggest_NoCandidatesFallsBackToQueryThenDropsIt(t *testing.T) {
	empty := &stubGenerator{out: candidate.Outcome{Status: candidate.StatusEmpty}}
	svc := New(empty, empty, rank.New(nil))

	res, err := svc.Suggest(context.Background(), "Ocean", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Suggestions) != 0 || res.Suggestions == nil {
		t.Errorf("expected empty non-nil suggestions, got %#v", res.Suggestions)
	}
}

func TestSuggest_Validation(t *testing.T) {
	g := &stubGenerator{}
	svc := New(g, g, rank.New(nil))

	tests := []struct {
		name  string
		query string
		limit int
	}{
		{"blank query", "   ", 3},
		{"zero limit", "x", 0},
		{"limit too large", "x", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Suggest(context.Background(), tt.query, tt.limit)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
	if len(g.seeds) != 0 {
		t.Error("expected no generator calls on invalid input")
	}
}
