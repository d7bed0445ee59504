package preference

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

// Service reads and replaces stored preferences.
type Service struct {
	repo Repository
}

// New creates a preference service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the preferences of userID, empty when none are stored.
func (s *Service) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("missing user id: %w", domain.ErrInvalidRequest)
	}
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// Set replaces the preferences of userID wholesale.
func (s *Service) Set(ctx context.Context, userID string, prefs domain.Preferences) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("missing user id: %w", domain.ErrInvalidRequest)
	}
	if err := s.repo.Set(ctx, userID, prefs); err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	return nil
}
