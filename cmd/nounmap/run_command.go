package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nounmap/internal/config"
	"nounmap/internal/logging"
	"nounmap/internal/notifications"
	"nounmap/internal/pipeline"
)

type runOverrides struct {
	source       string
	target       string
	output       string
	concurrency  int
	chapterLimit int
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		overrides runOverrides
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract proper nouns from both books and export the matched pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, cfg, overrides); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			notifier := notifications.NewService(cfg)
			started := time.Now()
			result, err := pipeline.New(cfg, logger).Run(cmd.Context())
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					notify(logger, notifier.NotifyRunFailed(context.WithoutCancel(cmd.Context()), err, cfg.Source.Path))
				}
				return err
			}
			notify(logger, notifier.NotifyRunCompleted(cmd.Context(), notifications.RunSummary{
				RunID:    result.RunID,
				Source:   cfg.Source.Path,
				Target:   cfg.Target.Path,
				Pairs:    len(result.Pairs),
				Flagged:  len(result.Flagged),
				PairPath: result.PairPath,
				Duration: time.Since(started),
			}))

			if jsonOut {
				return writeJSON(cmd, runSummaryJSON(result))
			}
			printRunSummary(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&overrides.source, "source", "", "Source book (overrides source.book)")
	cmd.Flags().StringVar(&overrides.target, "target", "", "Translated book (overrides target.book)")
	cmd.Flags().StringVarP(&overrides.output, "output", "o", "", "Artifact directory (overrides paths.output_dir)")
	cmd.Flags().IntVar(&overrides.concurrency, "concurrency", 0, "Concurrent tagger calls (overrides extraction.max_concurrency)")
	cmd.Flags().IntVar(&overrides.chapterLimit, "chapter-limit", 0, "Documents visited per book, 0 for all (overrides ingest.chapter_limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run summary as JSON")
	return cmd
}

func notify(logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	logging.WarnWithContext(logger, "run notification failed", "notification_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, "the run result is unaffected"),
	)
}

// applyRunOverrides copies explicitly set flags into cfg and re-validates.
func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, o runOverrides) error {
	flags := cmd.Flags()
	expand := func(field *string, value, name string) error {
		if !flags.Changed(name) {
			return nil
		}
		expanded, err := config.ExpandPath(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		*field = expanded
		return nil
	}
	if err := expand(&cfg.Source.Path, o.source, "source"); err != nil {
		return err
	}
	if err := expand(&cfg.Target.Path, o.target, "target"); err != nil {
		return err
	}
	if err := expand(&cfg.Paths.OutputDir, o.output, "output"); err != nil {
		return err
	}
	if flags.Changed("concurrency") {
		cfg.Extraction.MaxConcurrency = o.concurrency
	}
	if flags.Changed("chapter-limit") {
		if o.chapterLimit < 0 {
			return fmt.Errorf("--chapter-limit must be zero or positive")
		}
		cfg.Ingest.ChapterLimit = o.chapterLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.ValidateRun()
}

func printRunSummary(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", result.RunID)
	fmt.Fprintln(out, renderTable(
		[]string{"Side", "Chapters", "Paragraphs", "Skipped", "Mentions", "Forms", "Kept"},
		[][]string{
			sideRow("source", result.Source),
			sideRow("target", result.Target),
		},
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))

	if len(result.Pairs) == 0 {
		fmt.Fprintln(out, "No pairs matched.")
	} else {
		rows := make([][]string, 0, len(result.Pairs))
		for _, p := range result.Pairs {
			rows = append(rows, []string{p.Source, p.Target, strconv.Itoa(p.Score)})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Source", "Target", "Score"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
	}

	fmt.Fprintf(out, "Candidates: %d, kept: %d\n", result.Candidates, len(result.Pairs))
	if len(result.Flagged) > 0 {
		fmt.Fprintf(out, "Left out of pair file (delimiter collision): %d\n", len(result.Flagged))
	}
	if result.CacheHits+result.CacheMisses > 0 {
		fmt.Fprintf(out, "Tag cache: %d hits, %d misses\n", result.CacheHits, result.CacheMisses)
	}
	fmt.Fprintf(out, "JSON: %s\n", result.JSONPath)
	fmt.Fprintf(out, "Pairs: %s\n", result.PairPath)
}

func sideRow(name string, s pipeline.SideSummary) []string {
	return []string{
		name,
		strconv.Itoa(s.Chapters),
		strconv.Itoa(s.Stats.Paragraphs),
		strconv.Itoa(s.Stats.SkippedParagraphs),
		strconv.Itoa(s.Stats.Mentions),
		strconv.Itoa(s.Forms),
		strconv.Itoa(s.Kept),
	}
}

type runPairJSON struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Score  int    `json:"score"`
}

type runJSON struct {
	RunID      string        `json:"run_id"`
	Candidates int           `json:"candidates"`
	Pairs      []runPairJSON `json:"pairs"`
	Flagged    []runPairJSON `json:"flagged,omitempty"`
	JSONPath   string        `json:"json_path"`
	PairPath   string        `json:"pair_path"`
}

func runSummaryJSON(result *pipeline.Result) runJSON {
	out := runJSON{
		RunID:      result.RunID,
		Candidates: result.Candidates,
		Pairs:      make([]runPairJSON, 0, len(result.Pairs)),
		JSONPath:   result.JSONPath,
		PairPath:   result.PairPath,
	}
	for _, p := range result.Pairs {
		out.Pairs = append(out.Pairs, runPairJSON{Source: p.Source, Target: p.Target, Score: p.Score})
	}
	for _, p := range result.Flagged {
		out.Flagged = append(out.Flagged, runPairJSON{Source: p.Source, Target: p.Target, Score: p.Score})
	}
	return out
}
