package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBooks(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateTagger(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateNotify(); err != nil {
		return err
	}
	return nil
}

// ValidateRun checks the settings that only matter when the pipeline runs:
// both books must be configured.
func (c *Config) ValidateRun() error {
	if strings.TrimSpace(c.Source.Path) == "" {
		return errors.New("source.book must be set (edit the config or pass --source)")
	}
	if strings.TrimSpace(c.Target.Path) == "" {
		return errors.New("target.book must be set (edit the config or pass --target)")
	}
	if c.Source.Path == c.Target.Path {
		return errors.New("source.book and target.book must be different files")
	}
	return nil
}

func (c *Config) validateBooks() error {
	if c.Source.Language == c.Target.Language {
		return fmt.Errorf("source.language and target.language must differ (both %q)", c.Source.Language)
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.MaxConcurrency <= 0 {
		return errors.New("extraction.max_concurrency must be positive")
	}
	switch c.Extraction.JoinMode {
	case JoinModePair, JoinModeRun:
	default:
		return fmt.Errorf("extraction.join_mode must be %q or %q, got %q", JoinModePair, JoinModeRun, c.Extraction.JoinMode)
	}
	return nil
}

func (c *Config) validateTagger() error {
	switch c.Tagger.Kind {
	case TaggerKindHTTP:
		if c.Tagger.URL == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/nounmap/config.toml"
			}
			return fmt.Errorf("tagger.url is required when tagger.kind is %q. Set NOUNMAP_TAGGER_URL or edit %s (create with 'nounmap config init')", TaggerKindHTTP, defaultPath)
		}
	case TaggerKindRule:
	default:
		return fmt.Errorf("tagger.kind must be %q or %q, got %q", TaggerKindHTTP, TaggerKindRule, c.Tagger.Kind)
	}
	return ensurePositiveMap(map[string]int{
		"tagger.timeout_seconds": c.Tagger.TimeoutSeconds,
		"tagger.retry_attempts":  c.Tagger.RetryAttempts,
	})
}

func (c *Config) validateMatching() error {
	if c.Matching.NoiseFloor < 1 {
		return errors.New("matching.noise_floor must be >= 1")
	}
	if c.Matching.MatchThreshold < 0 || c.Matching.MatchThreshold >= 100 {
		return errors.New("matching.match_threshold must be between 0 and 99")
	}
	if c.Matching.MinSourceLength < 0 {
		return errors.New("matching.min_source_length must be >= 0")
	}
	if c.Matching.MinTargetUppercase < 0 {
		return errors.New("matching.min_target_uppercase must be >= 0")
	}
	switch c.Matching.Scorer {
	case ScorerRatio, ScorerLevenshtein, ScorerJaroWinkler:
	default:
		return fmt.Errorf("matching.scorer must be one of %q, %q, %q; got %q", ScorerRatio, ScorerLevenshtein, ScorerJaroWinkler, c.Matching.Scorer)
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.JSONFile == c.Export.PairFile {
		return errors.New("export.json_file and export.pair_file must differ")
	}
	if strings.ContainsAny(c.Export.PairDelimiter, "\r\n") {
		return errors.New("export.pair_delimiter must not contain line breaks")
	}
	return nil
}

func (c *Config) validateNotify() error {
	topic := c.Notify.NtfyTopic
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notify.ntfy_topic must be a full http(s) URL, got %q", topic)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
