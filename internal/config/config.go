package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Book describes one side of the parallel text.
type Book struct {
	Path     string `toml:"book"`
	Language string `toml:"language"`
}

// Ingest contains document ingestion settings.
type Ingest struct {
	// ChapterLimit caps the number of documents visited per book. 0 means unlimited.
	ChapterLimit int `toml:"chapter_limit"`
}

// Extraction contains proper-noun aggregation settings.
type Extraction struct {
	MaxConcurrency int    `toml:"max_concurrency"`
	JoinMode       string `toml:"join_mode"`
	ProperNounTag  string `toml:"proper_noun_tag"`
}

// Tagger contains settings for the named-entity tagging service.
type Tagger struct {
	Kind           string `toml:"kind"`
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	SourceModel    string `toml:"source_model"`
	TargetModel    string `toml:"target_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
}

// TagCache contains settings for the SQLite cache of tagger output.
type TagCache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Matching contains the noise floor and fuzzy-match thresholds.
type Matching struct {
	// NoiseFloor is the minimum mention count for a phonetic group or target noun.
	NoiseFloor int `toml:"noise_floor"`
	// MatchThreshold is the exclusive lower bound on the similarity score (0-100).
	MatchThreshold int `toml:"match_threshold"`
	// MinSourceLength is the minimum rune length of a kept source form.
	MinSourceLength int `toml:"min_source_length"`
	// MinTargetUppercase is the minimum number of upper-case letters in a kept target form.
	MinTargetUppercase int    `toml:"min_target_uppercase"`
	Scorer             string `toml:"scorer"`
}

// Export contains artifact naming.
type Export struct {
	JSONFile      string `toml:"json_file"`
	PairFile      string `toml:"pair_file"`
	PairDelimiter string `toml:"pair_delimiter"`
}

// Notify contains optional ntfy push settings. An empty topic disables it.
type Notify struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for nounmap.
//
// Configuration sections by subsystem:
//   - Paths: artifact and log directories
//   - Source/Target: the original book and its translation
//   - Ingest: chapter sampling limit
//   - Extraction: worker pool size and proper-noun joining
//   - Tagger: NER service connection and per-language models
//   - TagCache: SQLite cache of tagger output
//   - Matching: noise floor, score threshold, post-filters
//   - Export: artifact file names and pair delimiter
//   - Notify: optional ntfy push on run completion
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Source     Book       `toml:"source"`
	Target     Book       `toml:"target"`
	Ingest     Ingest     `toml:"ingest"`
	Extraction Extraction `toml:"extraction"`
	Tagger     Tagger     `toml:"tagger"`
	TagCache   TagCache   `toml:"tag_cache"`
	Matching   Matching   `toml:"matching"`
	Export     Export     `toml:"export"`
	Notify     Notify     `toml:"notify"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nounmap/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/nounmap/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("nounmap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories, plus the tag
// cache directory when the cache is enabled.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.TagCache.Enabled && strings.TrimSpace(c.TagCache.Path) != "" {
		dir := filepath.Dir(c.TagCache.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create tag cache directory %q: %w", dir, err)
		}
	}
	return nil
}

// JSONExportPath returns the absolute path of the structured export.
func (c *Config) JSONExportPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Export.JSONFile)
}

// PairExportPath returns the absolute path of the flattened pair file.
func (c *Config) PairExportPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Export.PairFile)
}

// LogFilePath returns the run log written next to stderr output.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, LogFileName)
}

// TaggerTimeout returns the per-request tagger timeout.
func (c *Config) TaggerTimeout() time.Duration {
	return time.Duration(c.Tagger.TimeoutSeconds) * time.Second
}

// ModelFor returns the tagger model configured for the given side ("source" or "target").
func (c *Config) ModelFor(side string) string {
	if side == SideTarget {
		return c.Tagger.TargetModel
	}
	return c.Tagger.SourceModel
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultTagCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "nounmap", "tags.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/nounmap/tags.db"
	}
	return filepath.Join(home, ".cache", "nounmap", "tags.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
