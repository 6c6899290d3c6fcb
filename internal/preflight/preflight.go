package preflight

import (
	"context"
	"fmt"
	"strings"

	"nounmap/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Book checks only run when books are configured, unless requireBooks is set.
func RunAll(ctx context.Context, cfg *config.Config, requireBooks bool) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if requireBooks || cfg.Source.Path != "" {
		results = append(results, CheckBookReadable("Source book", cfg.Source.Path))
	}
	if requireBooks || cfg.Target.Path != "" {
		results = append(results, CheckBookReadable("Target book", cfg.Target.Path))
	}

	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir, true))

	if cfg.TagCache.Enabled {
		results = append(results, CheckTagCache(cfg.TagCache.Path))
	}

	if cfg.Tagger.Kind == config.TaggerKindHTTP {
		results = append(results, CheckTagger(ctx, cfg.Tagger.URL, cfg.Tagger.Token))
	}

	return results
}

// Failed returns the failing results.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// Error summarises failing results as one error, or nil when all passed.
func Error(results []Result) error {
	failed := Failed(results)
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
}
