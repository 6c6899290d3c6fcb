package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nounmap/internal/config"
	"nounmap/internal/language"
	"nounmap/internal/preflight"
	"nounmap/internal/tagcache"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check that books, directories, the tag cache and the tagger are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, line := range configurationLines(cfg, ctx.configPath, ctx.configSeen, colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(stdout, line)
			}
			results := preflight.RunAll(cmd.Context(), cfg, false)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(stdout, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			if cfg.TagCache.Enabled {
				fmt.Fprintln(stdout)
				for _, line := range renderSectionHeader("Tag Cache", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, tagCacheLine(cmd, cfg.TagCache.Path, colorize))
			}

			return preflight.Error(results)
		},
	}
}

func configurationLines(cfg *config.Config, path string, exists bool, colorize bool) []string {
	var lines []string
	if exists {
		lines = append(lines, renderStatusLine("Config file", statusInfo, path, colorize))
	} else {
		lines = append(lines, renderStatusLine("Config file", statusWarn, "not found; defaults in use", colorize))
	}
	for _, side := range []struct {
		label string
		book  config.Book
	}{
		{"Source book", cfg.Source},
		{"Target book", cfg.Target},
	} {
		if side.book.Path == "" {
			lines = append(lines, renderStatusLine(side.label, statusWarn, "not set", colorize))
			continue
		}
		lines = append(lines, renderStatusLine(side.label, statusInfo, fmt.Sprintf("%s (%s)", side.book.Path, language.DisplayName(side.book.Language)), colorize))
	}
	tagger := cfg.Tagger.Kind
	if cfg.Tagger.Kind == config.TaggerKindHTTP {
		tagger = fmt.Sprintf("%s %s", cfg.Tagger.Kind, cfg.Tagger.URL)
	}
	lines = append(lines,
		renderStatusLine("Tagger", statusInfo, tagger, colorize),
		renderStatusLine("Join mode", statusInfo, cfg.Extraction.JoinMode, colorize),
		renderStatusLine("Matching", statusInfo, fmt.Sprintf("%s > %d, noise floor %d", cfg.Matching.Scorer, cfg.Matching.MatchThreshold, cfg.Matching.NoiseFloor), colorize),
		renderStatusLine("Output directory", statusInfo, cfg.Paths.OutputDir, colorize),
	)
	return lines
}

func tagCacheLine(cmd *cobra.Command, path string, colorize bool) string {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return renderStatusLine("Entries", statusInfo, "empty (created on first run)", colorize)
	}
	store, err := tagcache.Open(path)
	if err != nil {
		return renderStatusLine("Entries", statusError, err.Error(), colorize)
	}
	defer store.Close()
	count, err := store.Count(cmd.Context(), "")
	if err != nil {
		return renderStatusLine("Entries", statusError, err.Error(), colorize)
	}
	return renderStatusLine("Entries", statusOK, fmt.Sprintf("%d cached paragraphs", count), colorize)
}
