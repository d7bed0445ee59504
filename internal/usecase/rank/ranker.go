package rank

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/domain/term"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

// Ranker scores candidate terms against a reference query.
// With an embedder it uses cosine similarity; without one, or when embedding fails,
// every candidate is scored by token Jaccard so scores stay comparable.
type Ranker struct {
	embed domain.BatchEmbedder
}

// New creates a ranker. embed may be nil (equivalent to NoopEmbedder).
func New(embed domain.BatchEmbedder) *Ranker {
	if embed == nil {
		embed = NoopEmbedder{}
	}
	return &Ranker{embed: embed}
}

// Rank returns candidates ordered by descending score, stable on ties.
func (r *Ranker) Rank(ctx context.Context, reference string, candidates []string) []term.Ranked {
	if len(candidates) == 0 {
		return nil
	}

	ranked, err := r.semantic(ctx, reference, candidates)
	if err != nil {
		if !errors.Is(err, errNoEmbedder) {
			logger.FromContext(ctx).Warn("semantic ranking failed, using lexical overlap",
				zap.Int("candidates", len(candidates)),
				zap.Error(err),
			)
		}
		ranked = lexical(reference, candidates)
	}

	term.SortDescending(ranked)
	return ranked
}

func (r *Ranker) semantic(ctx context.Context, reference string, candidates []string) ([]term.Ranked, error) {
	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, reference)
	texts = append(texts, candidates...)

	res, err := r.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(res.Embeddings), len(texts))
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)

	ref := res.Embeddings[0]
	out := make([]term.Ranked, len(candidates))
	for i, c := range candidates {
		out[i] = term.Ranked{Term: c, Score: Cosine(ref, res.Embeddings[i+1])}
	}
	return out, nil
}

func lexical(reference string, candidates []string) []term.Ranked {
	out := make([]term.Ranked, len(candidates))
	for i, c := range candidates {
		out[i] = term.Ranked{Term: c, Score: Jaccard(reference, c)}
	}
	return out
}
