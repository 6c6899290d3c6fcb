package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"nounmap/internal/config"
)

func TestLoadDefaultConfigUsesEnvTaggerURLAndExpandsPaths(t *testing.T) {
	t.Setenv("NOUNMAP_TAGGER_URL", "http://127.0.0.1:8080/")
	t.Setenv("XDG_CACHE_HOME", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, "nounmap", "out")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Tagger.URL != "http://127.0.0.1:8080" {
		t.Fatalf("expected tagger url from env without trailing slash, got %q", cfg.Tagger.URL)
	}
	if cfg.Extraction.MaxConcurrency != 20 {
		t.Fatalf("expected default concurrency 20, got %d", cfg.Extraction.MaxConcurrency)
	}
	if cfg.Matching.NoiseFloor != 10 || cfg.Matching.MatchThreshold != 90 {
		t.Fatalf("unexpected matching defaults: %+v", cfg.Matching)
	}
	if cfg.Matching.MinSourceLength != 2 || cfg.Matching.MinTargetUppercase != 2 {
		t.Fatalf("unexpected post-filter defaults: %+v", cfg.Matching)
	}
	if cfg.Extraction.JoinMode != config.JoinModePair {
		t.Fatalf("expected pair join mode by default, got %q", cfg.Extraction.JoinMode)
	}
	if !strings.HasPrefix(cfg.TagCache.Path, tempHome) {
		t.Fatalf("expected tag cache under HOME, got %q", cfg.TagCache.Path)
	}
	if cfg.PairExportPath() != filepath.Join(wantOutput, "pairs.txt") {
		t.Fatalf("unexpected pair export path: %q", cfg.PairExportPath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, filepath.Dir(cfg.TagCache.Path)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nounmap.toml")

	type payload struct {
		Source struct {
			Book     string `toml:"book"`
			Language string `toml:"language"`
		} `toml:"source"`
		Target struct {
			Language string `toml:"language"`
		} `toml:"target"`
		Tagger struct {
			Kind string `toml:"kind"`
		} `toml:"tagger"`
		Extraction struct {
			MaxConcurrency int    `toml:"max_concurrency"`
			JoinMode       string `toml:"join_mode"`
		} `toml:"extraction"`
		Matching struct {
			Scorer         string `toml:"scorer"`
			MatchThreshold int    `toml:"match_threshold"`
		} `toml:"matching"`
	}
	custom := payload{}
	custom.Source.Book = filepath.Join(tempDir, "zh.epub")
	custom.Source.Language = "chi"
	custom.Target.Language = "English"
	custom.Tagger.Kind = "RULE"
	custom.Extraction.MaxConcurrency = 4
	custom.Extraction.JoinMode = "run"
	custom.Matching.Scorer = "Jaro-Winkler"
	custom.Matching.MatchThreshold = 85
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Source.Path != custom.Source.Book {
		t.Fatalf("expected source book from file, got %q", cfg.Source.Path)
	}
	if cfg.Source.Language != "zh" || cfg.Target.Language != "en" {
		t.Fatalf("expected languages normalized to zh/en, got %q/%q", cfg.Source.Language, cfg.Target.Language)
	}
	if cfg.Tagger.Kind != config.TaggerKindRule {
		t.Fatalf("expected tagger kind normalized to rule, got %q", cfg.Tagger.Kind)
	}
	if cfg.Extraction.MaxConcurrency != 4 || cfg.Extraction.JoinMode != config.JoinModeRun {
		t.Fatalf("unexpected extraction settings: %+v", cfg.Extraction)
	}
	if cfg.Matching.Scorer != config.ScorerJaroWinkler {
		t.Fatalf("expected scorer alias to normalize, got %q", cfg.Matching.Scorer)
	}
	if cfg.Matching.MatchThreshold != 85 {
		t.Fatalf("expected threshold 85, got %d", cfg.Matching.MatchThreshold)
	}
	if cfg.Matching.NoiseFloor != 10 {
		t.Fatalf("expected default noise floor to survive partial config, got %d", cfg.Matching.NoiseFloor)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "NOUNMAP_TAGGER_URL") {
		t.Fatalf("sample config missing tagger env hint: %s", contents)
	}

	cfg := config.Default()
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Matching.MatchThreshold != 90 {
		t.Fatalf("expected sample threshold 90, got %d", cfg.Matching.MatchThreshold)
	}
	if cfg.Export.PairDelimiter != ":" {
		t.Fatalf("expected sample delimiter ':', got %q", cfg.Export.PairDelimiter)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"missing tagger url", func(c *config.Config) { c.Tagger.URL = "" }, "tagger.url"},
		{"unknown tagger", func(c *config.Config) { c.Tagger.Kind = "spacy" }, "tagger.kind"},
		{"zero concurrency", func(c *config.Config) { c.Extraction.MaxConcurrency = 0 }, "max_concurrency"},
		{"bad join mode", func(c *config.Config) { c.Extraction.JoinMode = "trigram" }, "join_mode"},
		{"threshold too high", func(c *config.Config) { c.Matching.MatchThreshold = 100 }, "match_threshold"},
		{"noise floor", func(c *config.Config) { c.Matching.NoiseFloor = 0 }, "noise_floor"},
		{"scorer", func(c *config.Config) { c.Matching.Scorer = "soundex" }, "matching.scorer"},
		{"same languages", func(c *config.Config) { c.Target.Language = "zh" }, "language"},
		{"same artifacts", func(c *config.Config) { c.Export.PairFile = c.Export.JSONFile }, "export"},
		{"newline delimiter", func(c *config.Config) { c.Export.PairDelimiter = "\n" }, "pair_delimiter"},
		{"bare ntfy topic", func(c *config.Config) { c.Notify.NtfyTopic = "nounmap" }, "ntfy_topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Tagger.URL = "http://localhost:8080"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateRunRequiresBothBooks(t *testing.T) {
	cfg := config.Default()
	if err := cfg.ValidateRun(); err == nil {
		t.Fatal("expected error for missing books")
	}
	cfg.Source.Path = "/books/zh.epub"
	cfg.Target.Path = "/books/zh.epub"
	if err := cfg.ValidateRun(); err == nil {
		t.Fatal("expected error for identical books")
	}
	cfg.Target.Path = "/books/en.epub"
	if err := cfg.ValidateRun(); err != nil {
		t.Fatalf("ValidateRun returned error: %v", err)
	}
}

func TestLoadRejectsUnknownLanguage(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nounmap.toml")
	data := "[tagger]\nkind = \"rule\"\n\n[target]\nlanguage = \"klingon\"\n"
	if err := os.WriteFile(configPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "target.language") {
		t.Fatalf("expected target.language error, got %v", err)
	}
}
