package club

import (
	"sort"
	"strings"
	"unicode"
)

const (
	minConfidence  = 0.6
	maxSuggestions = 3
)

// SimilarNames suggests known players whose names look like name, most likely
// first. Exact matches (ignoring case and punctuation) are not suggestions:
// they are the same player written differently and are reported with
// confidence 1. Names with no close match return nil.
func SimilarNames(name string, known []string) []Suggestion {
	target := normalizeName(name)
	if target == "" {
		return nil
	}

	var suggestions []Suggestion
	for _, candidate := range known {
		if candidate == name {
			return nil
		}
		normalized := normalizeName(candidate)
		if normalized == "" {
			continue
		}

		score := max(stringSimilarity(target, normalized), tokenSimilarity(target, normalized))
		if normalized == target {
			score = 1.0
		}
		if score < minConfidence {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name:       candidate,
			Confidence: score,
			Reasons:    matchReasons(target, normalized),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// NewPlayerWarnings checks each name in names against known and returns the
// suggestions for the names that are new but resemble an existing player.
func NewPlayerWarnings(names []string, known []string) map[string][]Suggestion {
	warnings := make(map[string][]Suggestion)
	for _, name := range names {
		if s := SimilarNames(name, known); len(s) > 0 {
			warnings[name] = s
		}
	}
	return warnings
}

// normalizeName lowercases, drops everything but letters and spaces, and
// collapses whitespace.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stringSimilarity is 1 - levenshtein/maxLen over runes.
func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of name parts that have a close counterpart.
func tokenSimilarity(s1, s2 string) float64 {
	tokens1 := strings.Fields(s1)
	tokens2 := strings.Fields(s2)
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	matched := 0
	for _, t1 := range tokens1 {
		for _, t2 := range tokens2 {
			if stringSimilarity(t1, t2) > 0.75 {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(tokens1), len(tokens2)))
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func matchReasons(target, candidate string) []string {
	var reasons []string
	switch {
	case target == candidate:
		reasons = append(reasons, "Same name with different case or punctuation")
	case stringSimilarity(target, candidate) > 0.8:
		reasons = append(reasons, "Very similar spelling")
	}
	if target != candidate && tokenSimilarity(target, candidate) >= 0.5 {
		reasons = append(reasons, "Matching name components")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Partial name similarity")
	}
	return reasons
}
