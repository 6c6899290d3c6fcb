package testsupport

import (
	"context"
	"errors"
	"strings"
	"sync"

	"nounmap/internal/tagger"
)

// ErrStubTagger is returned by WordTagger for texts listed in FailOn.
var ErrStubTagger = errors.New("stub tagger failure")

// WordTagger splits text on whitespace and tags any word found in Proper
// as PROPN. It records every call for assertions.
type WordTagger struct {
	Proper map[string]bool
	FailOn map[string]bool

	mu    sync.Mutex
	calls []string
}

// NewWordTagger returns a WordTagger recognising the given words.
func NewWordTagger(proper ...string) *WordTagger {
	set := make(map[string]bool, len(proper))
	for _, p := range proper {
		set[p] = true
	}
	return &WordTagger{Proper: set}
}

// Tag implements tagger.Tagger.
func (w *WordTagger) Tag(_ context.Context, text string) ([]tagger.Token, error) {
	w.mu.Lock()
	w.calls = append(w.calls, text)
	w.mu.Unlock()

	if w.FailOn[text] {
		return nil, ErrStubTagger
	}
	fields := strings.Fields(text)
	tokens := make([]tagger.Token, 0, len(fields))
	for i, f := range fields {
		pos := "X"
		if w.Proper[f] {
			pos = tagger.ProperNoun
		}
		tokens = append(tokens, tagger.Token{Text: f, POS: pos, Index: i})
	}
	return tokens, nil
}

// Calls returns the number of Tag invocations.
func (w *WordTagger) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}
