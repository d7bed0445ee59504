package suggest

import (
	"context"

	"github.com/kailas-cloud/arttinder/internal/domain/term"
	"github.com/kailas-cloud/arttinder/internal/usecase/candidate"
)

// Generator produces candidate terms for a seed.
type Generator interface {
	Generate(ctx context.Context, seed string, n int) candidate.Outcome
}

// Ranker orders candidates by relevance to a reference.
type Ranker interface {
	Rank(ctx context.Context, reference string, candidates []string) []term.Ranked
}
