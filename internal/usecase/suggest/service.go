package suggest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/domain/term"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

// Limits and sizes of the suggestion flow.
const (
	DefaultLimit = 3
	MaxLimit     = 10

	llmCount   = 30
	assocCount = 40
	maxWords   = 2
)

var banned = []string{"wallpaper", "aesthetic"}

// Result is the suggestion response.
type Result struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Service turns a query into a short list of related search terms.
type Service struct {
	llm    Generator
	assoc  Generator
	ranker Ranker
}

// New creates a suggestion service. Candidates from llm are merged ahead of assoc.
func New(llm, assoc Generator, ranker Ranker) *Service {
	return &Service{llm: llm, assoc: assoc, ranker: ranker}
}

// Suggest returns up to limit terms related to query, most relevant first.
func (s *Service) Suggest(ctx context.Context, query string, limit int) (Result, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Result{}, fmt.Errorf("query is required: %w", domain.ErrInvalidRequest)
	}
	if limit < 1 || limit > MaxLimit {
		return Result{}, fmt.Errorf("limit must be between 1 and %d: %w", MaxLimit, domain.ErrInvalidRequest)
	}

	fromLLM := s.llm.Generate(ctx, q, llmCount)
	fromAssoc := s.assoc.Generate(ctx, q, assocCount)

	candidates := term.Normalize([][]string{fromLLM.Terms, fromAssoc.Terms}, q, maxWords, banned)
	ranked := s.ranker.Rank(ctx, q, candidates)

	ref := term.Key(q)
	suggestions := make([]string, 0, limit)
	for _, r := range ranked {
		if term.Key(r.Term) == ref {
			continue
		}
		suggestions = append(suggestions, r.Term)
		if len(suggestions) == limit {
			break
		}
	}

	logger.FromContext(ctx).Debug("suggestions computed",
		zap.String("llm_status", string(fromLLM.Status)),
		zap.String("assoc_status", string(fromAssoc.Status)),
		zap.Int("candidates", len(candidates)),
		zap.Int("suggestions", len(suggestions)),
	)

	return Result{Query: q, Suggestions: suggestions}, nil
}
