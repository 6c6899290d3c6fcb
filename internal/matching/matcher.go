package matching

import (
	"log/slog"
	"sort"
	"strings"

	"nounmap/internal/entities"
	"nounmap/internal/logging"
	"nounmap/internal/romanize"
	"nounmap/internal/textutil"
)

// DefaultThreshold is the exclusive lower bound on a kept score.
const DefaultThreshold = 90

// Candidate is one scored (source, target) comparison.
type Candidate struct {
	Source string
	Target string
	Score  int
}

// Pair is the resolved best match of one source form.
type Pair struct {
	Source string
	Target string
	Score  int
}

// Matcher resolves source groups against target names.
type Matcher struct {
	scorer    Scorer
	threshold int
	logger    *slog.Logger
}

// NewMatcher returns a matcher keeping candidates scoring above threshold.
// A nil scorer selects Ratio.
func NewMatcher(scorer Scorer, threshold int, logger *slog.Logger) *Matcher {
	if scorer == nil {
		scorer = Ratio
	}
	return &Matcher{
		scorer:    scorer,
		threshold: threshold,
		logger:    logging.NewComponentLogger(logger, "matching"),
	}
}

// Match scores every form of every group against every target form and
// returns one pair per source form, sorted by score descending then source.
// Equal scores for one source keep the target ranked first in target.
func (m *Matcher) Match(groups romanize.Groups, target entities.Frequency) []Pair {
	targets := target.Ranked()
	folded := make([]string, len(targets))
	for i, entry := range targets {
		folded[i] = textutil.Fold(entry.Form)
	}

	best := make(map[string]Candidate)
	considered := 0
	for _, group := range groups.Sorted() {
		for _, form := range group.Forms {
			for i, entry := range targets {
				considered++
				score := m.scorer(group.Key, folded[i])
				if score <= m.threshold {
					continue
				}
				if current, ok := best[form]; ok && current.Score >= score {
					continue
				}
				best[form] = Candidate{Source: form, Target: entry.Form, Score: score}
			}
		}
	}

	pairs := make([]Pair, 0, len(best))
	byTarget := make(map[string][]string)
	for _, c := range best {
		pairs = append(pairs, Pair(c))
		byTarget[c.Target] = append(byTarget[c.Target], c.Source)
	}
	SortPairs(pairs)

	for tgt, sources := range byTarget {
		if len(sources) > 1 {
			sort.Strings(sources)
			m.logger.Debug("shared target",
				logging.String("target", tgt),
				logging.String("sources", strings.Join(sources, ",")),
			)
		}
	}
	m.logger.Info("candidates resolved",
		logging.Int("comparisons", considered),
		logging.Int("pairs", len(pairs)),
		logging.Int("threshold", m.threshold),
	)
	return pairs
}

// SortPairs orders pairs by score descending, then source ascending.
func SortPairs(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		return pairs[i].Source < pairs[j].Source
	})
}
