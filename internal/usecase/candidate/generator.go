// Package candidate produces raw related search terms from a seed.
// Generators never fail the caller: provider errors degrade to an outcome with no terms.
package candidate

import (
	"context"

	"github.com/kailas-cloud/arttinder/internal/metrics"
)

// Status describes how a generator run ended.
type Status string

// Generator outcome statuses.
const (
	StatusProduced    Status = "produced"
	StatusEmpty       Status = "empty"
	StatusUnavailable Status = "unavailable"
)

// Outcome is the result of one generator run.
type Outcome struct {
	Terms  []string
	Status Status
}

// Generator produces up to n candidate terms for seed.
type Generator interface {
	Name() string
	Generate(ctx context.Context, seed string, n int) Outcome
}

func produced(generator string, terms []string) Outcome {
	if len(terms) == 0 {
		return record(generator, Outcome{Status: StatusEmpty})
	}
	return record(generator, Outcome{Terms: terms, Status: StatusProduced})
}

func unavailable(generator string) Outcome {
	return record(generator, Outcome{Status: StatusUnavailable})
}

func record(generator string, o Outcome) Outcome {
	metrics.CandidateGenerationsTotal.WithLabelValues(generator, string(o.Status)).Inc()
	return o
}
