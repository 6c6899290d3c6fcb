// Package replace applies a pair file to translated text, swapping each
// target-language name back to its source form.
//
// All names are searched at once with an Aho-Corasick automaton. Where
// matches overlap, the leftmost one wins and, among those starting at the
// same offset, the longest, so "Lin Feng" is replaced whole instead of
// leaving "Feng" behind a replaced "Lin".
package replace
