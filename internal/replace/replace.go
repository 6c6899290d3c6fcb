package replace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/ahocorasick"

	"nounmap/internal/export"
)

// Counts maps each replaced name to its number of substitutions.
type Counts map[string]int

// Total sums all substitutions.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Replacer rewrites text using a fixed name mapping.
type Replacer struct {
	patterns     []string
	replacements []string
	automaton    *ahocorasick.Automaton
}

// LoadMapping reads a pair file (source<delim>target) and returns the
// target -> source mapping used for replacement.
func LoadMapping(path, delim string) (*export.PairMapping, error) {
	pairs, err := export.LoadPairs(path, delim)
	if err != nil {
		return nil, err
	}
	return pairs.Invert(), nil
}

// New builds a Replacer substituting every key of mapping with its value.
func New(mapping *export.PairMapping) (*Replacer, error) {
	r := &Replacer{}
	for _, key := range mapping.Keys() {
		if key == "" {
			continue
		}
		value, _ := mapping.Get(key)
		r.patterns = append(r.patterns, key)
		r.replacements = append(r.replacements, value)
	}
	if len(r.patterns) == 0 {
		return r, nil
	}
	automaton, err := ahocorasick.NewBuilder().
		AddStrings(r.patterns).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build name automaton: %w", err)
	}
	r.automaton = automaton
	return r, nil
}

type span struct {
	start, end, pattern int
}

// Replace returns text with every name substituted and the per-name counts.
func (r *Replacer) Replace(text string) (string, Counts) {
	counts := make(Counts)
	if r.automaton == nil || text == "" {
		return text, counts
	}

	haystack := []byte(text)
	// FindAll skips names that follow a longer match, so spans are chosen
	// leftmost-longest from the overlapping set.
	raw := r.automaton.FindAllOverlapping(haystack)
	spans := make([]span, 0, len(raw))
	for _, m := range raw {
		if m.Start < 0 || m.End > len(haystack) || m.Start >= m.End {
			continue
		}
		spans = append(spans, span{start: m.Start, end: m.End, pattern: m.PatternID})
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			continue
		}
		b.WriteString(text[cursor:s.start])
		b.WriteString(r.replacements[s.pattern])
		counts[r.patterns[s.pattern]]++
		cursor = s.end
	}
	b.WriteString(text[cursor:])
	return b.String(), counts
}

// Len returns the number of names the replacer knows.
func (r *Replacer) Len() int {
	return len(r.patterns)
}
