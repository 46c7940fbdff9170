// Package suggest ranks known rule names against a name that was not found.
package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	levenshtein "github.com/texttheater/golang-levenshtein/levenshtein"
)

// DefaultLimit is the number of suggestions shown on a lookup miss.
const DefaultLimit = 5

// unit edit costs, so the distance is bounded by the longer string.
var editOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// Similarity scores a against b between 0 and 1, higher meaning closer.
// Comparison ignores case; identical strings score 1 and an empty string
// scores 0 against anything else.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	d := levenshtein.DistanceForStrings(
		[]rune(strings.ToLower(a)), []rune(strings.ToLower(b)), editOptions)
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(d)/float64(maxLen)
}

// Similar returns up to limit candidates closest to name. Candidates that
// contain name as a fuzzy subsequence come first in fuzzy rank order; the
// rest follow by descending Similarity. limit <= 0 means DefaultLimit.
func Similar(name string, candidates []string, limit int) []string {
	if len(candidates) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]string, 0, min(limit, len(candidates)))
	taken := make(map[int]bool)

	if name != "" {
		for _, m := range fuzzy.Find(name, candidates) {
			if len(out) == limit {
				return out
			}
			out = append(out, m.Str)
			taken[m.Index] = true
		}
	}

	type scored struct {
		name  string
		score float64
	}
	rest := make([]scored, 0, len(candidates))
	for i, c := range candidates {
		if !taken[i] {
			rest = append(rest, scored{name: c, score: Similarity(name, c)})
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].score > rest[j].score
	})

	for _, s := range rest {
		if len(out) == limit {
			break
		}
		out = append(out, s.name)
	}
	return out
}

// Filter keeps candidates matching pattern as a fuzzy subsequence, best
// match first. An empty pattern returns candidates unchanged.
func Filter(pattern string, candidates []string) []string {
	if pattern == "" {
		return candidates
	}
	matches := fuzzy.Find(pattern, candidates)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
