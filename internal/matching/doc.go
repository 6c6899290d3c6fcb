// Package matching links romanized source names to target-language names.
//
// Every form of every source group is scored against every target form
// (folded to lower case without whitespace). Candidates strictly above the
// threshold compete per source form; the best survives. PostFilter then
// removes single-rune sources and targets without at least two capitals.
//
// A target may end up paired with several source forms. Only source forms
// are unique.
package matching
