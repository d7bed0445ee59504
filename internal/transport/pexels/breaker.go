package pexels

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/metrics"
)

const breakerName = "pexels-api"

// searcher is the wrapped provider call.
type searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) (domain.PhotoPage, error)
}

// BreakerConfig controls when the circuit opens.
type BreakerConfig struct {
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	OpenTimeout  time.Duration
}

// BreakerClient guards provider searches with a circuit breaker.
// Caller errors (4xx such as a bad API key) do not count as failures.
type BreakerClient struct {
	inner searcher
	cb    *gobreaker.CircuitBreaker[domain.PhotoPage]
}

// NewBreakerClient wraps inner with a circuit breaker.
func NewBreakerClient(inner searcher, cfg BreakerConfig, logger *zap.Logger) *BreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[domain.PhotoPage](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: isSuccessful,
	})

	return &BreakerClient{inner: inner, cb: cb}
}

// Search runs inner.Search unless the circuit is open.
func (b *BreakerClient) Search(ctx context.Context, q domain.SearchQuery) (domain.PhotoPage, error) {
	page, err := b.cb.Execute(func() (domain.PhotoPage, error) {
		return b.inner.Search(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.PhotoPage{}, fmt.Errorf("pexels circuit %s: %w", err.Error(), domain.ErrUpstreamUnavailable)
	}
	return page, err
}

// HealthCheck fails while the circuit is open. It never calls the provider.
func (b *BreakerClient) HealthCheck(_ context.Context) error {
	if b.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("pexels circuit open: %w", domain.ErrUpstreamUnavailable)
	}
	return nil
}

// State reports the current breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Status >= http.StatusBadRequest && upErr.Status < http.StatusInternalServerError &&
			upErr.Status != http.StatusTooManyRequests
	}
	return errors.Is(err, context.Canceled)
}

// stateValue maps a state to the gauge value (0=closed, 1=half-open, 2=open).
func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
