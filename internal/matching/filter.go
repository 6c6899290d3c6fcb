package matching

import "nounmap/internal/textutil"

// Filter holds the post-match noise filters.
type Filter struct {
	// MinSourceLength drops sources with fewer runes.
	MinSourceLength int
	// MinTargetUppercase drops targets with fewer upper-case letters.
	MinTargetUppercase int
}

// PostFilter returns the pairs passing f, preserving order.
func PostFilter(pairs []Pair, f Filter) []Pair {
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if textutil.RuneLen(p.Source) < f.MinSourceLength {
			continue
		}
		if textutil.UpperCount(p.Target) < f.MinTargetUppercase {
			continue
		}
		out = append(out, p)
	}
	return out
}
