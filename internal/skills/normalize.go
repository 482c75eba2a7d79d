package skills

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a free-text skill token: trim, lower-case, collapse
// internal whitespace. Two tokens name the same skill iff their normalized
// forms are equal. Matching is exact-after-normalization; synonym resolution
// is deliberately out of scope.
func Normalize(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	return reSpaces.ReplaceAllString(token, " ")
}

// NormalizeSet normalizes every token and drops empties and duplicates,
// preserving first-seen order.
func NormalizeSet(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		n := Normalize(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// MatchCount returns the size of the intersection of the two token lists
// after normalization.
func MatchCount(have, want []string) int {
	haveSet := make(map[string]struct{}, len(have))
	for _, t := range NormalizeSet(have) {
		haveSet[t] = struct{}{}
	}
	matched := 0
	for _, t := range NormalizeSet(want) {
		if _, ok := haveSet[t]; ok {
			matched++
		}
	}
	return matched
}
