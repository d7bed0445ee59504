package rank

import (
	"context"
	"errors"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

var errNoEmbedder = errors.New("no semantic model configured")

// NoopEmbedder is the absent semantic capability. It always fails, forcing lexical ranking.
type NoopEmbedder struct{}

// BatchEmbed implements domain.BatchEmbedder.
func (NoopEmbedder) BatchEmbed(_ context.Context, _ []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchEmbeddingResult{}, errNoEmbedder
}
