package tagger

import (
	"context"
	"strings"
	"unicode"
)

// Rule tags proper nouns in cased scripts by capitalization. A capitalized
// word is a proper noun when it does not open a sentence, or when the same
// word also appears capitalized mid-sentence somewhere in the text.
// Punctuation becomes its own PUNCT token so adjacent names stay adjacent
// only when nothing separates them.
type Rule struct {
	tag string
}

// NewRule returns a Rule tagger labelling proper nouns with tag
// (ProperNoun when empty).
func NewRule(tag string) *Rule {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = ProperNoun
	}
	return &Rule{tag: tag}
}

type ruleWord struct {
	text          string
	punct         bool
	sentenceStart bool
}

// Tag implements Tagger.
func (r *Rule) Tag(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := splitWords(text)

	midSentence := make(map[string]bool)
	for _, w := range words {
		if !w.punct && !w.sentenceStart && isCapitalized(w.text) {
			midSentence[w.text] = true
		}
	}

	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		pos := "X"
		switch {
		case w.punct:
			pos = "PUNCT"
		case w.text == "I":
		case isCapitalized(w.text) && (!w.sentenceStart || midSentence[w.text]):
			pos = r.tag
		}
		tokens = append(tokens, Token{Text: w.text, POS: pos, Index: i})
	}
	return tokens, nil
}

func splitWords(text string) []ruleWord {
	var (
		words   []ruleWord
		current strings.Builder
		start   = true
	)
	flush := func() {
		if current.Len() == 0 {
			return
		}
		words = append(words, ruleWord{text: current.String(), sentenceStart: start})
		current.Reset()
		start = false
	}
	for _, ch := range text {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '\'' || ch == '’' || ch == '-':
			current.WriteRune(ch)
		case unicode.IsSpace(ch):
			flush()
		default:
			flush()
			words = append(words, ruleWord{text: string(ch), punct: true})
			if ch == '.' || ch == '!' || ch == '?' || ch == '"' || ch == '“' {
				start = true
			}
		}
	}
	flush()
	return words
}

func isCapitalized(word string) bool {
	for _, ch := range word {
		return unicode.IsUpper(ch)
	}
	return false
}
