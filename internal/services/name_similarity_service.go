package services

import (
	"math"
	"strings"
	"unicode"
)

// minSuggestionSimilarity is the lowest score still offered as a suggestion.
const minSuggestionSimilarity = 0.6

// NameSimilarityService spots repository names in the configuration that
// match nothing on GitHub, usually typos.
type NameSimilarityService struct{}

func NewNameSimilarityService() *NameSimilarityService {
	return &NameSimilarityService{}
}

// UnknownName is a configured name without a matching repository.
type UnknownName struct {
	Name       string
	Suggestion string
}

// CalculateSimilarity returns a value between 0 (completely different)
// and 1 (identical) for two repository names
func (s *NameSimilarityService) CalculateSimilarity(name1, name2 string) float64 {
	if name1 == name2 {
		return 1.0
	}

	normalized1 := s.normalizeName(name1)
	normalized2 := s.normalizeName(name2)
	if normalized1 == normalized2 {
		// Only case or separators differ
		return 0.95
	}
	if len(normalized1) == 0 || len(normalized2) == 0 {
		return 0.0
	}

	r1, r2 := []rune(normalized1), []rune(normalized2)
	distance := levenshteinDistance(r1, r2)
	maxLen := float64(max(len(r1), len(r2)))

	similarity := 1.0 - float64(distance)/maxLen

	// Boost names where one contains the other, e.g. "api" and "api-server"
	if strings.Contains(normalized1, normalized2) || strings.Contains(normalized2, normalized1) {
		similarity += 0.2
	}

	return math.Min(1.0, similarity)
}

// Suggest returns the candidate closest to name, if any is close enough
func (s *NameSimilarityService) Suggest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0
	for _, candidate := range candidates {
		if score := s.CalculateSimilarity(name, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore < minSuggestionSimilarity {
		return "", false
	}
	return best, true
}

// FindUnknown lists the configured names missing from existing, in the
// order given, each with its closest existing name when there is one
func (s *NameSimilarityService) FindUnknown(configured, existing []string) []UnknownName {
	known := toSet(existing)

	var unknown []UnknownName
	for _, name := range configured {
		if _, ok := known[name]; ok {
			continue
		}
		suggestion, _ := s.Suggest(name, existing)
		unknown = append(unknown, UnknownName{Name: name, Suggestion: suggestion})
	}
	return unknown
}

// normalizeName lowercases and keeps only letters and digits
func (s *NameSimilarityService) normalizeName(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// levenshteinDistance calculates the edit distance between two rune slices
func levenshteinDistance(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
