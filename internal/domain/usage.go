package domain

import (
	"context"
	"sync"
)

type usageKey struct{}

// Usage collects upstream token usage (completions and embeddings) for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// upstream decorators write to it; the handler reads it for response headers.
type Usage struct {
	mu          sync.Mutex
	totalTokens int
	used        bool
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *Usage) {
	u := &Usage{}
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *Usage {
	u, _ := ctx.Value(usageKey{}).(*Usage)
	return u
}

// AddTokens records consumed tokens. Safe on a nil receiver.
func (u *Usage) AddTokens(n int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.totalTokens += n
	u.used = true
	u.mu.Unlock()
}

// TotalTokens returns the tokens recorded so far.
func (u *Usage) TotalTokens() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.totalTokens
}

// Used reports whether any upstream call was recorded, even with 0 tokens.
func (u *Usage) Used() bool {
	if u == nil {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.used
}
