package preference

import (
	"context"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/usecase/candidate"
)

// Repository persists preferences per user id.
type Repository interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
	Set(ctx context.Context, userID string, prefs domain.Preferences) error
}

// Generator produces candidate terms for a seed.
type Generator interface {
	Generate(ctx context.Context, seed string, n int) candidate.Outcome
}
