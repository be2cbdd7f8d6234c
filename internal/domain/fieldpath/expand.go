// Package fieldpath expands localized field patterns into concrete index
// field paths, optionally annotated with query boosts.
package fieldpath

import (
	"strconv"
	"strings"
)

// CulturePlaceholder is replaced by the culture code in a pattern.
const CulturePlaceholder = "%s"

// BoostSeparator separates a field path from its boost in query syntax.
const BoostSeparator = "^"

// Boost maps a raw pattern to its relevance multiplier.
type Boost map[string]float64

// Expand substitutes each culture into each pattern, cultures in the outer
// loop. Patterns with an entry in boost get a ^N suffix.
func Expand(patterns, cultures []string, boost Boost) []string {
	out := make([]string, 0, len(patterns)*len(cultures))
	for _, culture := range cultures {
		for _, pattern := range patterns {
			path := strings.ReplaceAll(pattern, CulturePlaceholder, culture)
			if b, ok := boost[pattern]; ok {
				path = WithBoost(path, b)
			}
			out = append(out, path)
		}
	}
	return out
}

// One expands a single pattern.
func One(pattern string, cultures ...string) []string {
	return Expand([]string{pattern}, cultures, nil)
}

// ForCulture expands patterns for a single culture.
func ForCulture(patterns []string, culture string, boost Boost) []string {
	return Expand(patterns, []string{culture}, boost)
}

// WithBoost appends a boost suffix to path.
func WithBoost(path string, boost float64) string {
	return path + BoostSeparator + strconv.FormatFloat(boost, 'f', -1, 64)
}

// Split separates a path from its boost suffix.
// ok is false when there is no suffix or it is not a number.
func Split(path string) (field string, boost float64, ok bool) {
	i := strings.LastIndex(path, BoostSeparator)
	if i < 0 {
		return path, 0, false
	}
	b, err := strconv.ParseFloat(path[i+1:], 64)
	if err != nil {
		return path, 0, false
	}
	return path[:i], b, true
}
