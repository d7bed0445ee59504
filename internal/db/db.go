package db

import (
	"context"
	"time"
)

// Store is the storage facade used by repositories and the embedding cache.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks storage availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides whole-value key operations. Set replaces the value atomically.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// TTLStore is a KVStore that can expire values.
type TTLStore interface {
	KVStore
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
