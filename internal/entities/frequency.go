package entities

import "sort"

// Frequency maps a proper-noun surface form to its mention count.
type Frequency map[string]int

// Entry is one ranked form.
type Entry struct {
	Form  string
	Count int
}

// Add increments form by n. Non-positive n is ignored so counts stay positive.
func (f Frequency) Add(form string, n int) {
	if n <= 0 {
		return
	}
	f[form] += n
}

// Merge adds every count of other into f.
func (f Frequency) Merge(other Frequency) {
	for form, n := range other {
		f.Add(form, n)
	}
}

// Ranked returns the entries by count descending; equal counts are ordered by
// form so the ranking is reproducible.
func (f Frequency) Ranked() []Entry {
	out := make([]Entry, 0, len(f))
	for form, n := range f {
		out = append(out, Entry{Form: form, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Form < out[j].Form
	})
	return out
}

// FilterMin returns a copy holding only forms counted at least min times.
func (f Frequency) FilterMin(min int) Frequency {
	out := make(Frequency, len(f))
	for form, n := range f {
		if n >= min {
			out[form] = n
		}
	}
	return out
}

// Mentions sums every count.
func (f Frequency) Mentions() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}
