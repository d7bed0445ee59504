package recommend

import (
	"context"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

// Preferences loads a user's stored preferences.
type Preferences interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
}

// Expander turns preferences into search terms.
type Expander interface {
	Expand(ctx context.Context, prefs domain.Preferences, target int) []string
}

// Searcher runs one photo search.
type Searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) (domain.PhotoPage, error)
}
