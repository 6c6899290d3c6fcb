package testsupport

import (
	"path/filepath"
	"testing"

	"nounmap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The tagger defaults to the offline rule adapter and the tag cache lives
// under the temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Tagger.Kind = config.TaggerKindRule
	cfgVal.TagCache.Path = filepath.Join(base, "cache", "tags.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBooks sets the source and target book paths.
func WithBooks(source, target string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.Path = source
		b.cfg.Target.Path = target
	}
}

// WithHTTPTagger points the tagger at url.
func WithHTTPTagger(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tagger.Kind = config.TaggerKindHTTP
		b.cfg.Tagger.URL = url
		b.cfg.Tagger.RetryAttempts = 1
	}
}

// WithoutTagCache disables the SQLite tag cache.
func WithoutTagCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TagCache.Enabled = false
	}
}

// WithNoiseFloor overrides the matching noise floor.
func WithNoiseFloor(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.NoiseFloor = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
