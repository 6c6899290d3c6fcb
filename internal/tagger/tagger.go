package tagger

import "context"

// ProperNoun is the default part-of-speech label for proper nouns.
const ProperNoun = "PROPN"

// Token is one tagged word of a paragraph. Index is the token's position in
// the paragraph, starting at zero.
type Token struct {
	Text  string `json:"text"`
	POS   string `json:"pos"`
	Index int    `json:"index"`
}

// Tagger assigns part-of-speech labels to the tokens of a text.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

// HealthChecker is implemented by taggers backed by a remote service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
