package rank

import (
	"math"

	"github.com/kailas-cloud/arttinder/internal/domain/term"
)

// Cosine returns dot(a,b)/(|a||b|). Zero when either norm is zero or lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Jaccard returns |A∩B|/|A∪B| over lowercased whitespace token sets. Zero when both are empty.
func Jaccard(a, b string) float64 {
	sa, sb := term.Tokens(a), term.Tokens(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}
