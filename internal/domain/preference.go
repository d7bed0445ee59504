package domain

import (
	"fmt"
	"strings"
)

// Preference field names read by the recommendation pipeline.
const (
	PrefStyles   = "styles"
	PrefSubjects = "subjects"
)

// Preferences is an open key-value record stored per user and replaced wholesale on save.
type Preferences map[string]any

// String coerces a field to a string. Missing and null fields are empty.
func (p Preferences) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// BaseTerms splits the styles and subjects fields on commas, keeping trimmed non-empty parts
// in styles-then-subjects order.
func (p Preferences) BaseTerms() []string {
	joined := p.String(PrefStyles) + "," + p.String(PrefSubjects)
	var out []string
	for _, part := range strings.Split(joined, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
