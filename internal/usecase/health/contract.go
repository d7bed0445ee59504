package health

import "context"

// Checker reports whether a component is reachable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CheckFunc adapts a function such as a store Ping to Checker.
type CheckFunc func(ctx context.Context) error

// HealthCheck implements Checker.
func (f CheckFunc) HealthCheck(ctx context.Context) error { return f(ctx) }
