package matching

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Scorer rates the similarity of two strings from 0 to 100.
type Scorer func(a, b string) int

// Scorer names accepted by ScorerByName.
const (
	ScorerRatio       = "ratio"
	ScorerLevenshtein = "levenshtein"
	ScorerJaroWinkler = "jaro_winkler"
)

// ScorerByName resolves a configured scorer.
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", ScorerRatio:
		return Ratio, nil
	case ScorerLevenshtein:
		return Levenshtein, nil
	case ScorerJaroWinkler:
		return JaroWinkler, nil
	default:
		return nil, fmt.Errorf("matching: unknown scorer %q", name)
	}
}

// Ratio is the insertion/deletion similarity 2*LCS/(len(a)+len(b)) scaled to
// 100 and rounded half to even, counted in runes. Two empty strings score 0.
func Ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(100 * float64(2*matchr.LongestCommonSubsequence(a, b)) / float64(total)))
}

// Levenshtein scores 100*(1 - distance/longer length).
func Levenshtein(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	dist := matchr.Levenshtein(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// JaroWinkler scores 100 times the Jaro-Winkler similarity.
func JaroWinkler(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	return int(math.Round(100 * matchr.JaroWinkler(a, b, false)))
}
