package term

import "strings"

// Normalize merges candidate lists in priority order into a filtered, deduplicated list.
//
// Each term is trimmed and dropped when it is empty, equals reference (case-insensitive),
// contains a banned substring or has more than maxWords words. When nothing survives,
// the first non-empty of these wins: the second list alone, the raw concatenation,
// a list holding only reference. Fallback lists are deduplicated but not filtered.
func Normalize(lists [][]string, reference string, maxWords int, banned []string) []string {
	var combined []string
	for _, l := range lists {
		combined = append(combined, l...)
	}

	ref := Key(strings.TrimSpace(reference))
	kept := NewSet(len(combined))
	for _, t := range combined {
		s := strings.TrimSpace(t)
		if s == "" {
			continue
		}
		if Key(s) == ref {
			continue
		}
		if ContainsAny(s, banned) {
			continue
		}
		if WordCount(s) > maxWords {
			continue
		}
		kept.Add(s)
	}
	if kept.Len() > 0 {
		return kept.Terms()
	}

	if len(lists) > 1 && len(lists[1]) > 0 {
		return Dedupe(lists[1])
	}
	if len(combined) > 0 {
		return Dedupe(combined)
	}
	if reference == "" {
		return nil
	}
	return []string{reference}
}
