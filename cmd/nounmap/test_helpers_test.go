package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"nounmap/internal/config"
	"nounmap/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

// setupCLITestEnv writes a rule-tagger configuration into a temp directory.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) cliTestEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOUNMAP_TAGGER_URL", "")
	t.Setenv("NOUNMAP_NTFY_TOPIC", "")

	cfg := testsupport.NewConfig(t, opts...)
	path := filepath.Join(testsupport.BaseDir(cfg), "nounmap.toml")
	writeConfigFile(t, path, cfg)
	return cliTestEnv{cfg: cfg, configPath: path}
}

func writeConfigFile(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeLatinBooks builds a source/target pair the rule tagger can read.
func writeLatinBooks(t *testing.T, dir string) (string, string) {
	t.Helper()
	source := filepath.Join(dir, "source.epub")
	target := filepath.Join(dir, "target.epub")
	testsupport.WriteEPUB(t, source,
		testsupport.Document{Title: "One", Paragraphs: testsupport.Repeat("Then Zhang San waved.", 6)},
		testsupport.Document{Title: "Two", Paragraphs: testsupport.Repeat("Then Zhang San waved.", 4)},
	)
	testsupport.WriteEPUB(t, target,
		testsupport.Document{Title: "One", Paragraphs: testsupport.Repeat("Later Zhang San smiled.", 6)},
		testsupport.Document{Title: "Two", Paragraphs: testsupport.Repeat("Later Zhang San smiled.", 4)},
	)
	return source, target
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\nfull output:\n%s", needle, haystack)
	}
}
