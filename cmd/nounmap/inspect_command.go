package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nounmap/internal/book"
	"nounmap/internal/config"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		chapterLimit int
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <book.epub>",
		Short: "Show the chapters and paragraph counts read from a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve book path: %w", err)
			}

			limit := cfg.Ingest.ChapterLimit
			if cmd.Flags().Changed("chapter-limit") {
				limit = chapterLimit
			}
			content, stats, err := book.Load(cmd.Context(), path, book.Options{
				ChapterLimit: limit,
				Logger:       logger,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, inspectJSON(path, content, stats))
			}

			out := cmd.OutOrStdout()
			chapters := content.Chapters()
			rows := make([][]string, 0, len(chapters))
			for i, ch := range chapters {
				rows = append(rows, []string{strconv.Itoa(i + 1), ch.Title, strconv.Itoa(len(ch.Paragraphs))})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "Paragraphs"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Documents visited: %d, chapters: %d, untitled: %d, malformed: %d, duplicate titles: %d\n",
				stats.Documents, stats.Chapters, stats.Untitled, stats.Malformed, stats.Duplicates)
			fmt.Fprintf(out, "Paragraphs: %d\n", content.ParagraphCount())
			return nil
		},
	}

	cmd.Flags().IntVar(&chapterLimit, "chapter-limit", 0, "Documents visited, 0 for all (overrides ingest.chapter_limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the chapter list as JSON")
	return cmd
}

type inspectChapterJSON struct {
	Title      string `json:"title"`
	Paragraphs int    `json:"paragraphs"`
}

type inspectResultJSON struct {
	Book       string               `json:"book"`
	Stats      book.Stats           `json:"stats"`
	Chapters   []inspectChapterJSON `json:"chapters"`
	Paragraphs int                  `json:"paragraphs"`
}

func inspectJSON(path string, content *book.ContentMap, stats book.Stats) inspectResultJSON {
	out := inspectResultJSON{
		Book:       path,
		Stats:      stats,
		Chapters:   make([]inspectChapterJSON, 0, content.Len()),
		Paragraphs: content.ParagraphCount(),
	}
	for _, ch := range content.Chapters() {
		out.Chapters = append(out.Chapters, inspectChapterJSON{Title: ch.Title, Paragraphs: len(ch.Paragraphs)})
	}
	return out
}
