package entities

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"nounmap/internal/book"
	"nounmap/internal/logging"
	"nounmap/internal/tagger"
)

// DefaultMaxConcurrency bounds the chapter workers when Options leaves it unset.
const DefaultMaxConcurrency = 20

// Options configures Aggregate.
type Options struct {
	MaxConcurrency int
	Extractor      Extractor
	Logger         *slog.Logger
	// Side labels log lines ("source" or "target").
	Side string
}

// Stats summarises one aggregation.
type Stats struct {
	Chapters          int
	Paragraphs        int
	BlankParagraphs   int
	SkippedParagraphs int
	Tokens            int
	Mentions          int
}

func (s *Stats) add(other Stats) {
	s.Paragraphs += other.Paragraphs
	s.BlankParagraphs += other.BlankParagraphs
	s.SkippedParagraphs += other.SkippedParagraphs
	s.Tokens += other.Tokens
	s.Mentions += other.Mentions
}

type chapterResult struct {
	freq  Frequency
	stats Stats
}

// Aggregate counts proper nouns across every chapter of content. Chapters are
// dispatched in book order to at most MaxConcurrency workers; a tagger
// failure skips only the affected paragraph. Cancelling ctx stops dispatch
// and returns ctx.Err().
func Aggregate(ctx context.Context, content *book.ContentMap, tg tagger.Tagger, opts Options) (Frequency, Stats, error) {
	logger := logging.NewComponentLogger(opts.Logger, "entities")
	if opts.Side != "" {
		logger = logger.With(logging.String(logging.FieldSide, opts.Side))
	}
	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}
	extractor := opts.Extractor
	if extractor.tag == "" {
		extractor, _ = NewExtractor("", JoinPair)
	}

	chapters := content.Chapters()
	results := make([]chapterResult, len(chapters))
	progress := logging.NewCountdown(logger, "chapters", len(chapters), 10)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ch := range chapters {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			freq, stats, err := processChapter(gctx, ch, tg, extractor, logger)
			if err != nil {
				return err
			}
			results[i] = chapterResult{freq: freq, stats: stats}
			progress.Done(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	total := make(Frequency)
	stats := Stats{Chapters: len(chapters)}
	for _, r := range results {
		total.Merge(r.freq)
		stats.add(r.stats)
	}

	logger.Info("proper nouns aggregated",
		logging.Int("chapters", stats.Chapters),
		logging.Int("paragraphs", stats.Paragraphs),
		logging.Int("skipped_paragraphs", stats.SkippedParagraphs),
		logging.Int("distinct_forms", len(total)),
		logging.Int("mentions", stats.Mentions),
	)
	return total, stats, nil
}

func processChapter(ctx context.Context, ch book.Chapter, tg tagger.Tagger, extractor Extractor, logger *slog.Logger) (Frequency, Stats, error) {
	freq := make(Frequency)
	var stats Stats
	for i, para := range ch.Paragraphs {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.Paragraphs++
		if strings.TrimSpace(para) == "" {
			stats.BlankParagraphs++
			continue
		}
		tokens, err := tg.Tag(ctx, para)
		if err != nil {
			if ctx.Err() != nil {
				return nil, stats, ctx.Err()
			}
			stats.SkippedParagraphs++
			logging.WarnWithContext(logger, "paragraph skipped", "paragraph_tag_failed",
				logging.String(logging.FieldChapter, ch.Title),
				logging.Int("paragraph", i),
				logging.String(logging.FieldErrorHint, "check the tagger service logs"),
				logging.String(logging.FieldImpact, "mentions in this paragraph are not counted"),
				logging.Error(err),
			)
			continue
		}
		stats.Tokens += len(tokens)
		stats.Mentions += extractor.Paragraph(tokens, freq)
	}
	return freq, stats, nil
}
