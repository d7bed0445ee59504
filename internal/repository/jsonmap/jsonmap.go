// Package jsonmap keeps a map of records as a single JSON document under one store key.
package jsonmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kailas-cloud/arttinder/internal/db"
)

// store is the consumer interface for the document (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Map is a keyed collection of V persisted as one JSON object.
// The mutex serializes read-modify-write within the process only.
type Map[V any] struct {
	store store
	key   string
	mu    sync.Mutex
}

// New creates a Map stored under key.
func New[V any](s store, key string) *Map[V] {
	return &Map[V]{store: s, key: key}
}

// Load returns the full map. A missing document is an empty map.
func (m *Map[V]) Load(ctx context.Context) (map[string]V, error) {
	data, err := m.store.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return map[string]V{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", m.key, err)
	}
	if len(data) == 0 {
		return map[string]V{}, nil
	}

	out := map[string]V{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.key, err)
	}
	return out, nil
}

// Update loads the map, applies fn and writes the result back.
// Nothing is written when fn returns an error.
func (m *Map[V]) Update(ctx context.Context, fn func(map[string]V) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(all); err != nil {
		return err
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.key, err)
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		return fmt.Errorf("save %s: %w", m.key, err)
	}
	return nil
}
