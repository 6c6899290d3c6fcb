// Package language normalizes the language codes configured for each book.
//
// Config accepts ISO 639-1 or 639-2 codes, BCP 47 tags and English names and
// stores the 2-letter form. Cased tells callers whether capitalization can
// stand in for a tagger on that side.
package language
