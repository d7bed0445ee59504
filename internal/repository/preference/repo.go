package preference

import (
	"context"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/repository/jsonmap"
)

// Key is the store key of the preferences document.
const Key = "prefs"

// store is the consumer interface for preferences (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/preference.Repository on a single JSON document keyed by user id.
type Repo struct {
	doc *jsonmap.Map[domain.Preferences]
}

// New creates a preference repository.
func New(s store) *Repo {
	return &Repo{doc: jsonmap.New[domain.Preferences](s, Key)}
}

// All returns every user's preferences.
func (r *Repo) All(ctx context.Context) (map[string]domain.Preferences, error) {
	return r.doc.Load(ctx)
}

// Get returns the preferences of userID, or an empty record.
func (r *Repo) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	all, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p, ok := all[userID]; ok && p != nil {
		return p, nil
	}
	return domain.Preferences{}, nil
}

// Set replaces the preferences of userID.
func (r *Repo) Set(ctx context.Context, userID string, prefs domain.Preferences) error {
	if prefs == nil {
		prefs = domain.Preferences{}
	}
	return r.doc.Update(ctx, func(all map[string]domain.Preferences) error {
		all[userID] = prefs
		return nil
	})
}
