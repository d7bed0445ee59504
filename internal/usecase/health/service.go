package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/logger"
	"github.com/kailas-cloud/arttinder/internal/version"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates a required component is failing.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component is one named dependency. A failing Required component makes the service unhealthy.
type Component struct {
	Name     string
	Checker  Checker
	Required bool
}

// Report aggregates health check results.
type Report struct {
	Status  Status                 `json:"status"`
	Checks  map[string]CheckResult `json:"checks"`
	Version string                 `json:"version"`
}

// Service coordinates health checks.
type Service struct {
	components []Component
	timeout    time.Duration
}

// New creates a Service. Components with a nil Checker are skipped.
func New(timeout time.Duration, components ...Component) *Service {
	var kept []Component
	for _, c := range components {
		if c.Checker != nil {
			kept = append(kept, c)
		}
	}
	return &Service{components: kept, timeout: timeout}
}

// Check runs every component check sequentially, each bounded by the service timeout.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	status := Healthy

	for _, c := range s.components {
		if err := s.run(ctx, c.Checker); err != nil {
			logger.FromContext(ctx).Warn("health check failed",
				zap.String("component", c.Name),
				zap.Error(err),
			)
			checks[c.Name] = CheckError
			if c.Required {
				status = Unhealthy
			} else if status == Healthy {
				status = Degraded
			}
			continue
		}
		checks[c.Name] = CheckOK
	}

	return Report{Status: status, Checks: checks, Version: version.String()}
}

func (s *Service) run(ctx context.Context, c Checker) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return c.HealthCheck(ctx)
}
