package recommend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

// Page size bounds and pipeline sizes.
const (
	DefaultPerPage = 10
	MaxPerPage     = 30

	expandTarget = 20
	perTermLimit = 5
)

// FallbackTerms are searched when preferences expand to nothing.
var FallbackTerms = []string{"art", "abstract", "surreal", "nature", "portrait"}

// Request is one recommendation call.
type Request struct {
	UserID  string
	PerPage int
	Page    int
	APIKey  string
}

// Service assembles a photo page from a user's preferences.
type Service struct {
	prefs    Preferences
	expander Expander
	search   Searcher
}

// New creates a recommendation service.
func New(prefs Preferences, expander Expander, search Searcher) *Service {
	return &Service{prefs: prefs, expander: expander, search: search}
}

// Recommend searches the first page of each expanded term in order, merges the photos,
// drops repeated ids keeping the first and returns the requested slice.
// TotalResults is the size of the merged deduplicated list. Any search error aborts the call.
func (s *Service) Recommend(ctx context.Context, req Request) (domain.PhotoPage, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return domain.PhotoPage{}, fmt.Errorf("missing X-User-Id: %w", domain.ErrInvalidRequest)
	}
	if req.PerPage < 1 || req.PerPage > MaxPerPage {
		return domain.PhotoPage{}, fmt.Errorf("per_page must be between 1 and %d: %w", MaxPerPage, domain.ErrInvalidRequest)
	}
	if req.Page < 1 {
		return domain.PhotoPage{}, fmt.Errorf("page must be at least 1: %w", domain.ErrInvalidRequest)
	}

	prefs, err := s.prefs.Get(ctx, req.UserID)
	if err != nil {
		return domain.PhotoPage{}, fmt.Errorf("load preferences: %w", err)
	}

	terms := s.expander.Expand(ctx, prefs, expandTarget)
	if len(terms) == 0 {
		terms = FallbackTerms
	}

	unique, err := s.collect(ctx, terms, min(perTermLimit, req.PerPage), req.APIKey)
	if err != nil {
		return domain.PhotoPage{}, err
	}

	logger.FromContext(ctx).Debug("recommendations assembled",
		zap.Int("terms", len(terms)),
		zap.Int("unique_photos", len(unique)),
	)

	return domain.PhotoPage{
		Source:       domain.PhotoSource,
		TotalResults: len(unique),
		Page:         req.Page,
		PerPage:      req.PerPage,
		Photos:       paginate(unique, req.Page, req.PerPage),
	}, nil
}

func (s *Service) collect(ctx context.Context, terms []string, perTerm int, apiKey string) ([]domain.Photo, error) {
	seen := make(map[int64]struct{})
	var unique []domain.Photo

	for _, t := range terms {
		page, err := s.search.Search(ctx, domain.SearchQuery{Query: t, PerPage: perTerm, Page: 1, APIKey: apiKey})
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", t, err)
		}
		for _, p := range page.Photos {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			unique = append(unique, p)
		}
	}
	return unique, nil
}

func paginate(photos []domain.Photo, page, perPage int) []domain.Photo {
	if page-1 > len(photos)/perPage {
		return []domain.Photo{}
	}
	start := (page - 1) * perPage
	if start >= len(photos) {
		return []domain.Photo{}
	}
	end := min(start+perPage, len(photos))
	return photos[start:end]
}
