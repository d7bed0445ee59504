package term

import "strings"

// WordCount returns the number of whitespace-separated words in t.
func WordCount(t string) int {
	return len(strings.Fields(t))
}

// ContainsAny reports whether the lowercased t contains any of the substrings.
func ContainsAny(t string, substrings []string) bool {
	lt := strings.ToLower(t)
	for _, s := range substrings {
		if strings.Contains(lt, s) {
			return true
		}
	}
	return false
}

// Tokens returns the lowercased whitespace token set of t.
func Tokens(t string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(t))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
