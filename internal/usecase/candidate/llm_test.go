package candidate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/arttinder/internal/metrics"
)

func TestLLMGenerator_NoCompleter(t *testing.T) {
	out := NewLLMGenerator(nil).Generate(context.Background(), "sunrise", 30)
	if out.Status != StatusUnavailable || out.Terms != nil {
		t.Errorf("expected unavailable, got %+v", out)
	}
}

func TestLLMGenerator_Error(t *testing.T) {
	out := NewLLMGenerator(&mockCompleter{err: errors.New("timeout")}).Generate(context.Background(), "x", 10)
	if out.Status != StatusUnavailable {
		t.Errorf("expected unavailable, got %s", out.Status)
	}
}

func TestLLMGenerator_Parses(t *testing.T) {
	c := &mockCompleter{reply: "Golden Hour, alpine dawn\nmisty peaks, golden hour,  , summit glow"}
	out := NewLLMGenerator(c).Generate(context.Background(), "mountain sunrise", 30)

	want := []string{"Golden Hour", "alpine dawn", "misty peaks", "summit glow"}
	if out.Status != StatusProduced {
		t.Fatalf("expected produced, got %s", out.Status)
	}
	if strings.Join(out.Terms, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", out.Terms, want)
	}
	if len(c.prompts) != 1 || !strings.Contains(c.prompts[0], "Query: mountain sunrise\n") {
		t.Errorf("unexpected prompt: %q", c.prompts)
	}
}

func TestLLMGenerator_CapsAtMaxOfNAndTen(t *testing.T) {
	var parts []string
	for i := 0; i < 25; i++ {
		parts = append(parts, fmt.Sprintf("term%d", i))
	}
	c := &mockCompleter{reply: strings.Join(parts, ",")}
	g := NewLLMGenerator(c)

	if got := len(g.Generate(context.Background(), "x", 3).Terms); got != 10 {
		t.Errorf("n=3: expected 10 terms, got %d", got)
	}
	if got := len(g.Generate(context.Background(), "x", 20).Terms); got != 20 {
		t.Errorf("n=20: expected 20 terms, got %d", got)
	}
}

func TestLLMGenerator_EmptyReply(t *testing.T) {
	before := testutil.ToFloat64(metrics.CandidateGenerationsTotal.WithLabelValues(GeneratorLLM, string(StatusEmpty)))

	out := NewLLMGenerator(&mockCompleter{reply: " ,\n, "}).Generate(context.Background(), "x", 10)
	if out.Status != StatusEmpty || len(out.Terms) != 0 {
		t.Errorf("expected empty, got %+v", out)
	}

	after := testutil.ToFloat64(metrics.CandidateGenerationsTotal.WithLabelValues(GeneratorLLM, string(StatusEmpty)))
	if after-before != 1 {
		t.Errorf("expected empty outcome counted once, got %v", after-before)
	}
}

func TestPrompt(t *testing.T) {
	want := "You are a helpful assistant for image search. Given a user query, propose concise,\n" +
		"diverse related search terms (1-3 words each), focused on concepts/subjects/visual motifs.\n" +
		"Query: cats\n" +
		"Return 15 terms, comma-separated only."
	if got := Prompt("cats"); got != want {
		t.Errorf("unexpected prompt:\n%s", got)
	}
}
