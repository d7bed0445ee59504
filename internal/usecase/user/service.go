package user

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

// Repository persists users keyed by id.
type Repository interface {
	All(ctx context.Context) (map[string]domain.User, error)
	Upsert(ctx context.Context, userID, handle string) (domain.User, error)
}

// Service registers handles and resolves them to user ids.
type Service struct {
	repo Repository
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// ValidateHandle reports whether handle is registered, comparing trimmed lowercase forms.
// When several users share a handle the lowest user id wins.
func (s *Service) ValidateHandle(ctx context.Context, handle string) (domain.HandleLookup, error) {
	want := strings.ToLower(strings.TrimSpace(handle))
	if want == "" {
		return domain.HandleLookup{}, fmt.Errorf("handle is required: %w", domain.ErrInvalidRequest)
	}

	users, err := s.repo.All(ctx)
	if err != nil {
		return domain.HandleLookup{}, fmt.Errorf("load users: %w", err)
	}

	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		u := users[id]
		if strings.ToLower(strings.TrimSpace(u.Handle)) == want {
			return domain.HandleLookup{Exists: true, UserID: &id, Handle: &u.Handle}, nil
		}
	}
	return domain.HandleLookup{}, nil
}

// Upsert registers or renames userID.
func (s *Service) Upsert(ctx context.Context, userID, handle string) (domain.User, error) {
	userID = strings.TrimSpace(userID)
	handle = strings.TrimSpace(handle)
	if userID == "" || handle == "" {
		return domain.User{}, fmt.Errorf("userId and handle required: %w", domain.ErrInvalidRequest)
	}
	u, err := s.repo.Upsert(ctx, userID, handle)
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}
