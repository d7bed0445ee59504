package candidate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain/term"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

// GeneratorWordAssoc is the metrics label of the word-association generator.
const GeneratorWordAssoc = "word_association"

const maxAssocWords = 2

// assocBanned are substrings that mark generic filler results.
var assocBanned = []string{"wallpaper", "aesthetic", "photography", "background", "landscape", "portrait"}

// WordAssociationGenerator asks a thesaurus-like service for words meaning like the seed.
type WordAssociationGenerator struct {
	finder WordFinder
}

// NewWordAssociationGenerator creates the generator.
func NewWordAssociationGenerator(f WordFinder) *WordAssociationGenerator {
	return &WordAssociationGenerator{finder: f}
}

// Name implements Generator.
func (g *WordAssociationGenerator) Name() string { return GeneratorWordAssoc }

// Generate returns up to n short, non-generic associations in provider order.
func (g *WordAssociationGenerator) Generate(ctx context.Context, seed string, n int) Outcome {
	if g.finder == nil {
		return unavailable(GeneratorWordAssoc)
	}

	words, err := g.finder.RelatedWords(ctx, seed, n)
	if err != nil {
		logger.FromContext(ctx).Warn("word association lookup failed",
			zap.String("seed", seed),
			zap.Error(err),
		)
		return unavailable(GeneratorWordAssoc)
	}

	set := term.NewSet(len(words))
	for _, w := range words {
		s := strings.TrimSpace(w)
		if s == "" || term.WordCount(s) > maxAssocWords || term.ContainsAny(s, assocBanned) {
			continue
		}
		set.Add(s)
		if set.Len() >= n {
			break
		}
	}
	return produced(GeneratorWordAssoc, set.Terms())
}
