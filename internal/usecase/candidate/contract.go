package candidate

import "context"

// Completer sends a single prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WordFinder returns words associated with a seed.
type WordFinder interface {
	RelatedWords(ctx context.Context, seed string, limit int) ([]string, error)
}
