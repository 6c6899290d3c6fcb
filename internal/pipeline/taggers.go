package pipeline

import (
	"fmt"

	"nounmap/internal/config"
	"nounmap/internal/tagger"
)

// newTagger builds the configured tagger for one side and returns the model
// name its cache entries are keyed by.
func newTagger(cfg *config.Config, side string) (tagger.Tagger, string, error) {
	switch cfg.Tagger.Kind {
	case config.TaggerKindHTTP:
		model := cfg.ModelFor(side)
		return tagger.NewHTTP(tagger.Config{
			URL:            cfg.Tagger.URL,
			Token:          cfg.Tagger.Token,
			Model:          model,
			TimeoutSeconds: cfg.Tagger.TimeoutSeconds,
		}, tagger.WithRetryMaxAttempts(cfg.Tagger.RetryAttempts)), model, nil
	case config.TaggerKindRule:
		return tagger.NewRule(cfg.Extraction.ProperNounTag), "rule:" + cfg.Extraction.ProperNounTag, nil
	default:
		return nil, "", fmt.Errorf("unknown tagger kind %q", cfg.Tagger.Kind)
	}
}
