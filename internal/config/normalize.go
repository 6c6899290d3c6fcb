package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nounmap/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeBooks(); err != nil {
		return err
	}
	c.normalizeExtraction()
	c.normalizeTagger()
	if err := c.normalizeTagCache(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeExport()
	c.normalizeNotify()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBooks() error {
	var err error
	if c.Source.Path, err = expandPath(strings.TrimSpace(c.Source.Path)); err != nil {
		return fmt.Errorf("source.book: %w", err)
	}
	if c.Target.Path, err = expandPath(strings.TrimSpace(c.Target.Path)); err != nil {
		return fmt.Errorf("target.book: %w", err)
	}
	if c.Source.Language, err = normalizeLanguage(c.Source.Language, defaultSourceLanguage); err != nil {
		return fmt.Errorf("source.language: %w", err)
	}
	if c.Target.Language, err = normalizeLanguage(c.Target.Language, defaultTargetLanguage); err != nil {
		return fmt.Errorf("target.language: %w", err)
	}
	if c.Ingest.ChapterLimit < 0 {
		c.Ingest.ChapterLimit = 0
	}
	return nil
}

func normalizeLanguage(value, fallback string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	code := language.ToISO2(value)
	if code == "" {
		return "", fmt.Errorf("unrecognized language %q", value)
	}
	return code, nil
}

func (c *Config) normalizeExtraction() {
	if c.Extraction.MaxConcurrency <= 0 {
		c.Extraction.MaxConcurrency = defaultMaxConcurrency
	}
	c.Extraction.JoinMode = strings.ToLower(strings.TrimSpace(c.Extraction.JoinMode))
	if c.Extraction.JoinMode == "" {
		c.Extraction.JoinMode = JoinModePair
	}
	c.Extraction.ProperNounTag = strings.TrimSpace(c.Extraction.ProperNounTag)
	if c.Extraction.ProperNounTag == "" {
		c.Extraction.ProperNounTag = defaultProperNounTag
	}
}

func (c *Config) normalizeTagger() {
	c.Tagger.Kind = strings.ToLower(strings.TrimSpace(c.Tagger.Kind))
	if c.Tagger.Kind == "" {
		c.Tagger.Kind = TaggerKindHTTP
	}
	c.Tagger.URL = strings.TrimRight(strings.TrimSpace(c.Tagger.URL), "/")
	if c.Tagger.URL == "" {
		if value, ok := os.LookupEnv("NOUNMAP_TAGGER_URL"); ok {
			c.Tagger.URL = strings.TrimRight(strings.TrimSpace(value), "/")
		}
	}
	c.Tagger.Token = strings.TrimSpace(c.Tagger.Token)
	if c.Tagger.Token == "" {
		if value, ok := os.LookupEnv("NOUNMAP_TAGGER_TOKEN"); ok {
			c.Tagger.Token = strings.TrimSpace(value)
		}
	}
	c.Tagger.SourceModel = strings.TrimSpace(c.Tagger.SourceModel)
	if c.Tagger.SourceModel == "" {
		c.Tagger.SourceModel = defaultSourceModel
	}
	c.Tagger.TargetModel = strings.TrimSpace(c.Tagger.TargetModel)
	if c.Tagger.TargetModel == "" {
		c.Tagger.TargetModel = defaultTargetModel
	}
	if c.Tagger.TimeoutSeconds <= 0 {
		c.Tagger.TimeoutSeconds = defaultTaggerTimeout
	}
	if c.Tagger.RetryAttempts <= 0 {
		c.Tagger.RetryAttempts = defaultTaggerRetries
	}
}

func (c *Config) normalizeTagCache() error {
	var err error
	if strings.TrimSpace(c.TagCache.Path) == "" {
		c.TagCache.Path = defaultTagCachePath()
	}
	if c.TagCache.Path, err = expandPath(strings.TrimSpace(c.TagCache.Path)); err != nil {
		return fmt.Errorf("tag_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.Scorer = strings.ToLower(strings.TrimSpace(c.Matching.Scorer))
	switch c.Matching.Scorer {
	case "":
		c.Matching.Scorer = ScorerRatio
	case "jaro-winkler", "jarowinkler":
		c.Matching.Scorer = ScorerJaroWinkler
	}
}

func (c *Config) normalizeExport() {
	c.Export.JSONFile = filepath.Base(strings.TrimSpace(c.Export.JSONFile))
	if c.Export.JSONFile == "" || c.Export.JSONFile == "." {
		c.Export.JSONFile = defaultJSONFile
	}
	c.Export.PairFile = filepath.Base(strings.TrimSpace(c.Export.PairFile))
	if c.Export.PairFile == "" || c.Export.PairFile == "." {
		c.Export.PairFile = defaultPairFile
	}
	if c.Export.PairDelimiter == "" {
		c.Export.PairDelimiter = defaultPairDelimiter
	}
}

func (c *Config) normalizeNotify() {
	c.Notify.NtfyTopic = strings.TrimSpace(c.Notify.NtfyTopic)
	if c.Notify.NtfyTopic == "" {
		if value, ok := os.LookupEnv("NOUNMAP_NTFY_TOPIC"); ok {
			c.Notify.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notify.RequestTimeout <= 0 {
		c.Notify.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
