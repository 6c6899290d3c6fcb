// Package romanize keys source-language proper nouns by pronunciation.
//
// Pinyin romanizes Han characters to tone-less syllables; Group concatenates
// the syllables of each form into a lower-case key and gathers forms that
// share a key, summing their mention counts. Groups below the noise floor
// are dropped.
package romanize
