package romanize

import (
	"log/slog"
	"sort"
	"strings"

	"nounmap/internal/entities"
	"nounmap/internal/logging"
)

// Group is every source form sharing one romanized key.
type Group struct {
	Key   string
	Count int
	// Forms are in ranked order of the source frequency.
	Forms []string
}

// Groups maps romanized keys to their group.
type Groups map[string]*Group

// Key returns the romanized key of form: concatenated syllables, lower-cased,
// whitespace dropped.
func Key(r Romanizer, form string) string {
	var b strings.Builder
	for _, syl := range r.Romanize(form) {
		b.WriteString(strings.ToLower(strings.TrimSpace(syl)))
	}
	return strings.Join(strings.Fields(b.String()), "")
}

// GroupForms groups every form of freq by romanized key and drops groups
// whose summed count is below noiseFloor.
func GroupForms(freq entities.Frequency, r Romanizer, noiseFloor int, logger *slog.Logger) Groups {
	logger = logging.NewComponentLogger(logger, "romanize")
	ranked := freq.Ranked()
	progress := logging.NewCountdown(logger, "proper nouns", len(ranked), 10)

	groups := make(Groups)
	for _, entry := range ranked {
		key := Key(r, entry.Form)
		if g, ok := groups[key]; ok {
			g.Count += entry.Count
			g.Forms = append(g.Forms, entry.Form)
		} else {
			groups[key] = &Group{Key: key, Count: entry.Count, Forms: []string{entry.Form}}
		}
		progress.Done(1)
	}

	dropped := 0
	for key, g := range groups {
		if g.Count < noiseFloor {
			delete(groups, key)
			dropped++
		}
	}
	logger.Info("proper nouns grouped",
		logging.Int("forms", len(ranked)),
		logging.Int("groups", len(groups)),
		logging.Int("below_noise_floor", dropped),
	)
	return groups
}

// Sorted returns the groups by count descending, then key.
func (g Groups) Sorted() []*Group {
	out := make([]*Group, 0, len(g))
	for _, group := range g {
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
