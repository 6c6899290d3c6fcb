package entities

import (
	"fmt"
	"strings"

	"nounmap/internal/tagger"
)

// Join modes.
const (
	// JoinPair forms a two-token name from a proper noun and the proper noun
	// right before it; runs of three or more yield overlapping pairs.
	JoinPair = "pair"
	// JoinRun joins each maximal run of proper nouns into one form.
	JoinRun = "run"
)

const joinSeparator = " "

// Extractor turns tagged tokens into proper-noun surface forms.
type Extractor struct {
	tag  string
	mode string
}

// NewExtractor returns an extractor matching tokens tagged tag (tagger.ProperNoun
// when empty) and joining them according to mode.
func NewExtractor(tag, mode string) (Extractor, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = tagger.ProperNoun
	}
	switch mode {
	case "", JoinPair:
		mode = JoinPair
	case JoinRun:
	default:
		return Extractor{}, fmt.Errorf("entities: unknown join mode %q", mode)
	}
	return Extractor{tag: tag, mode: mode}, nil
}

// Paragraph counts the surface forms found in tokens into freq and returns
// the number of mentions added.
func (e Extractor) Paragraph(tokens []tagger.Token, freq Frequency) int {
	if e.mode == JoinRun {
		return e.runs(tokens, freq)
	}
	return e.pairs(tokens, freq)
}

func (e Extractor) isProper(tok tagger.Token) bool {
	return tok.POS == e.tag
}

func (e Extractor) pairs(tokens []tagger.Token, freq Frequency) int {
	added := 0
	for i, tok := range tokens {
		if !e.isProper(tok) {
			continue
		}
		form := tok.Text
		if prev, ok := previous(tokens, i); ok && e.isProper(prev) {
			form = prev.Text + joinSeparator + tok.Text
		}
		freq.Add(form, 1)
		added++
	}
	return added
}

// previous returns the token whose Index is one below tokens[i]. Tokens
// normally arrive in index order, so the slice neighbour is checked first.
func previous(tokens []tagger.Token, i int) (tagger.Token, bool) {
	want := tokens[i].Index - 1
	if want < 0 {
		return tagger.Token{}, false
	}
	if i > 0 && tokens[i-1].Index == want {
		return tokens[i-1], true
	}
	for _, tok := range tokens {
		if tok.Index == want {
			return tok, true
		}
	}
	return tagger.Token{}, false
}

func (e Extractor) runs(tokens []tagger.Token, freq Frequency) int {
	added := 0
	var run []string
	lastIndex := -2
	flush := func() {
		if len(run) > 0 {
			freq.Add(strings.Join(run, joinSeparator), 1)
			added++
			run = run[:0]
		}
	}
	for _, tok := range tokens {
		if !e.isProper(tok) {
			flush()
			lastIndex = tok.Index
			continue
		}
		if len(run) > 0 && tok.Index != lastIndex+1 {
			flush()
		}
		run = append(run, tok.Text)
		lastIndex = tok.Index
	}
	flush()
	return added
}
