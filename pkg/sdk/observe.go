package arttinder

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// clientMetrics holds client-side call metrics.
type clientMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arttinder",
			Subsystem: "client",
			Name:      "calls_total",
			Help:      "API calls by operation and HTTP status.",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arttinder",
			Subsystem: "client",
			Name:      "call_duration_seconds",
			Help:      "API call duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an identical one already registered.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("arttinder: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("arttinder: metric already registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and counts API calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe records one call. status is the HTTP status, 0 when no response arrived.
func (o *observer) observe(op string, start time.Time, status int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, code).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("arttinder call failed", "op", op, "status", status, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("arttinder call completed", "op", op, "status", status, "duration", dur)
}
