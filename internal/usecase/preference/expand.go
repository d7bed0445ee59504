package preference

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/domain/term"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

const (
	defaultSeed  = "inspiration"
	seedTerms    = 6
	assocPerTerm = 10
	maxTermWords = 3
)

// Expander turns stored preferences into an ordered list of search terms.
type Expander struct {
	llm   Generator
	assoc Generator
}

// NewExpander creates an expander. Base terms are merged ahead of llm terms,
// which are merged ahead of assoc terms.
func NewExpander(llm, assoc Generator) *Expander {
	return &Expander{llm: llm, assoc: assoc}
}

// Expand returns at most target distinct terms of up to three words.
// Empty preferences expand to nothing.
func (e *Expander) Expand(ctx context.Context, prefs domain.Preferences, target int) []string {
	if len(prefs) == 0 || target <= 0 {
		return nil
	}

	base := prefs.BaseTerms()
	head := base[:min(seedTerms, len(base))]

	seed := strings.Join(head, ", ")
	if seed == "" {
		seed = defaultSeed
	}

	fromLLM := e.llm.Generate(ctx, seed, target)

	var fromAssoc []string
	for _, t := range head {
		fromAssoc = append(fromAssoc, e.assoc.Generate(ctx, t, assocPerTerm).Terms...)
	}

	out := term.NewSet(target)
	for _, list := range [][]string{base, fromLLM.Terms, fromAssoc} {
		for _, t := range list {
			s := strings.TrimSpace(t)
			if s == "" || term.WordCount(s) > maxTermWords {
				continue
			}
			out.Add(s)
			if out.Len() >= target {
				return e.done(ctx, out.Terms(), len(base))
			}
		}
	}
	return e.done(ctx, out.Terms(), len(base))
}

func (e *Expander) done(ctx context.Context, terms []string, base int) []string {
	logger.FromContext(ctx).Debug("preferences expanded",
		zap.Int("base_terms", base),
		zap.Int("terms", len(terms)),
	)
	if len(terms) == 0 {
		return nil
	}
	return terms
}
