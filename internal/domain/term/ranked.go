package term

import "sort"

// Ranked is a candidate term with its relevance score.
type Ranked struct {
	Term  string
	Score float64
}

// SortDescending orders ranked terms by score, highest first, keeping input order on ties.
func SortDescending(r []Ranked) {
	sort.SliceStable(r, func(i, j int) bool {
		return r[i].Score > r[j].Score
	})
}

// Terms returns the terms of r in order.
func Terms(r []Ranked) []string {
	out := make([]string, len(r))
	for i, x := range r {
		out[i] = x.Term
	}
	return out
}
