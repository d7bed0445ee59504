package candidate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain/term"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

// GeneratorLLM is the metrics label of the language model generator.
const GeneratorLLM = "llm"

// minLLMTerms is the floor applied to the requested count.
const minLLMTerms = 10

const promptTemplate = "You are a helpful assistant for image search. Given a user query, propose concise,\n" +
	"diverse related search terms (1-3 words each), focused on concepts/subjects/visual motifs.\n" +
	"Query: %s\n" +
	"Return 15 terms, comma-separated only."

// LLMGenerator asks a language model for related terms.
type LLMGenerator struct {
	completer Completer
}

// NewLLMGenerator creates the generator. A nil completer means no credential is configured
// and every run reports StatusUnavailable.
func NewLLMGenerator(c Completer) *LLMGenerator {
	return &LLMGenerator{completer: c}
}

// Name implements Generator.
func (g *LLMGenerator) Name() string { return GeneratorLLM }

// Generate returns up to max(n, 10) deduplicated terms in model order.
func (g *LLMGenerator) Generate(ctx context.Context, seed string, n int) Outcome {
	if g.completer == nil {
		return unavailable(GeneratorLLM)
	}

	content, err := g.completer.Complete(ctx, Prompt(seed))
	if err != nil {
		logger.FromContext(ctx).Warn("llm candidate generation failed",
			zap.String("seed", seed),
			zap.Error(err),
		)
		return unavailable(GeneratorLLM)
	}

	terms := ParseList(content)
	if limit := max(n, minLLMTerms); len(terms) > limit {
		terms = terms[:limit]
	}
	return produced(GeneratorLLM, terms)
}

// Prompt builds the completion prompt for seed.
func Prompt(seed string) string {
	return fmt.Sprintf(promptTemplate, seed)
}

// ParseList splits a comma- or newline-separated model reply into trimmed,
// case-insensitively deduplicated terms.
func ParseList(content string) []string {
	parts := strings.Split(strings.ReplaceAll(content, "\n", ","), ",")
	set := term.NewSet(len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			set.Add(s)
		}
	}
	if set.Len() == 0 {
		return nil
	}
	return set.Terms()
}
