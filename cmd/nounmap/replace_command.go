package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nounmap/internal/config"
	"nounmap/internal/fileutil"
	"nounmap/internal/replace"
)

func newReplaceCommand(ctx *commandContext) *cobra.Command {
	var (
		pairsPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "replace <input.txt>",
		Short: "Restore original-language names in a text using a pair file",
		Long: "Replace reads a pair file (source<delimiter>target per line), inverts it and\n" +
			"substitutes every translated name in the input with its original form.\n" +
			"Longer names win over names they contain.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			pairs := strings.TrimSpace(pairsPath)
			if pairs == "" {
				pairs = cfg.PairExportPath()
			} else if pairs, err = config.ExpandPath(pairs); err != nil {
				return fmt.Errorf("resolve pair file: %w", err)
			}

			mapping, err := replace.LoadMapping(pairs, cfg.Export.PairDelimiter)
			if err != nil {
				return err
			}
			replacer, err := replace.New(mapping)
			if err != nil {
				return err
			}

			input, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			text, counts := replacer.Replace(string(data))

			report := cmd.ErrOrStderr()
			if out := strings.TrimSpace(outputPath); out != "" {
				if out, err = config.ExpandPath(out); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := fileutil.WriteFileAtomic(out, []byte(text), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				report = cmd.OutOrStdout()
				fmt.Fprintf(report, "Wrote %s\n", out)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), text)
			}

			printReplaceCounts(report, counts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pairsPath, "pairs", "p", "", "Pair file to apply (defaults to the configured pair export)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result here instead of stdout")
	return cmd
}

func printReplaceCounts(out io.Writer, counts replace.Counts) {
	if len(counts) == 0 {
		fmt.Fprintln(out, "No names replaced.")
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
	}
	fmt.Fprintln(out, renderTable([]string{"Name", "Replaced"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(out, "Total replacements: %d\n", counts.Total())
}
