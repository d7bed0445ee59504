// Package term holds candidate search-term primitives: case-insensitive ordered sets,
// word counting, normalization of merged candidate lists and ranked terms.
package term

import "strings"

// Set is an insertion-ordered set of terms keyed by their lowercased form.
// The first spelling seen for a key is the one kept.
type Set struct {
	seen  map[string]struct{}
	terms []string
}

// NewSet creates an empty set with room for n terms.
func NewSet(n int) *Set {
	return &Set{seen: make(map[string]struct{}, n), terms: make([]string, 0, n)}
}

// Add inserts t unless a term with the same key is already present. Reports whether t was added.
func (s *Set) Add(t string) bool {
	k := Key(t)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.terms = append(s.terms, t)
	return true
}

// Contains reports whether a term with the same key is present.
func (s *Set) Contains(t string) bool {
	_, ok := s.seen[Key(t)]
	return ok
}

// Len returns the number of distinct terms.
func (s *Set) Len() int { return len(s.terms) }

// Terms returns the kept terms in insertion order.
func (s *Set) Terms() []string { return s.terms }

// Key is the dedup key of a term.
func Key(t string) string { return strings.ToLower(t) }

// Dedupe returns terms with case-insensitive duplicates removed, first occurrence kept.
func Dedupe(terms []string) []string {
	s := NewSet(len(terms))
	for _, t := range terms {
		s.Add(t)
	}
	return s.Terms()
}
