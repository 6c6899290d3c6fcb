package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ideographicSpace is the full-width space used for paragraph indentation in
// CJK typesetting.
const ideographicSpace = "　"

// Fold lower-cases s and removes every whitespace rune so that
// "Zhang San" and "zhangsan" compare equal.
func Fold(s string) string {
	lowered := cases.Lower(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered)
}

// UpperCount returns the number of upper-case letters in s.
func UpperCount(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			count++
		}
	}
	return count
}

// RuneLen returns the number of code points in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// StripIdeographicSpace removes U+3000 from s.
func StripIdeographicSpace(s string) string {
	if !strings.Contains(s, ideographicSpace) {
		return s
	}
	return strings.ReplaceAll(s, ideographicSpace, "")
}
