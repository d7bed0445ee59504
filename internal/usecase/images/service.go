package images

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

// Page size bounds of plain search.
const (
	DefaultPerPage = 24
	MaxPerPage     = 80
)

const probeQuery = "nature"

// Searcher runs one photo search.
type Searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) (domain.PhotoPage, error)
}

// KeySource carries the caller-supplied provider key candidates.
type KeySource struct {
	Header string
	Query  string
}

// Service runs photo searches with a resolved provider key.
type Service struct {
	search     Searcher
	defaultKey string
}

// New creates an image search service. defaultKey is used when the caller supplies none.
func New(search Searcher, defaultKey string) *Service {
	return &Service{search: search, defaultKey: strings.TrimSpace(defaultKey)}
}

// ResolveKey picks the header key, then the query key, then the configured key.
func (s *Service) ResolveKey(src KeySource) (string, error) {
	if k := strings.TrimSpace(src.Header); k != "" {
		return k, nil
	}
	if k := strings.TrimSpace(src.Query); k != "" {
		return k, nil
	}
	if s.defaultKey != "" {
		return s.defaultKey, nil
	}
	return "", fmt.Errorf("missing Pexels API key: set PEXELS_API_KEY, send X-Pexels-Api-Key or api_key: %w",
		domain.ErrConfigurationMissing)
}

// Search returns one normalized provider page for query.
func (s *Service) Search(ctx context.Context, query string, perPage, page int, src KeySource) (domain.PhotoPage, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.PhotoPage{}, fmt.Errorf("q is required: %w", domain.ErrInvalidRequest)
	}
	if perPage < 1 || perPage > MaxPerPage {
		return domain.PhotoPage{}, fmt.Errorf("per_page must be between 1 and %d: %w", MaxPerPage, domain.ErrInvalidRequest)
	}
	if page < 1 {
		return domain.PhotoPage{}, fmt.Errorf("page must be at least 1: %w", domain.ErrInvalidRequest)
	}

	key, err := s.ResolveKey(src)
	if err != nil {
		return domain.PhotoPage{}, err
	}

	res, err := s.search.Search(ctx, domain.SearchQuery{Query: q, PerPage: perPage, Page: page, APIKey: key})
	if err != nil {
		return domain.PhotoPage{}, fmt.Errorf("search photos: %w", err)
	}
	return res, nil
}

// ValidateKey runs a one-result probe search with the resolved key.
func (s *Service) ValidateKey(ctx context.Context, src KeySource) error {
	key, err := s.ResolveKey(src)
	if err != nil {
		return err
	}
	if _, err := s.search.Search(ctx, domain.SearchQuery{Query: probeQuery, PerPage: 1, Page: 1, APIKey: key}); err != nil {
		return fmt.Errorf("validate key: %w", err)
	}
	return nil
}
