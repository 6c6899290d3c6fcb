package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"nounmap/internal/book"
	"nounmap/internal/config"
	"nounmap/internal/entities"
	"nounmap/internal/export"
	"nounmap/internal/language"
	"nounmap/internal/logging"
	"nounmap/internal/matching"
	"nounmap/internal/preflight"
	"nounmap/internal/romanize"
	"nounmap/internal/tagcache"
	"nounmap/internal/tagger"
)

// LockFileName is created in the output directory while a run holds it.
const LockFileName = ".nounmap.lock"

// ErrLocked is returned when another run holds the output directory.
var ErrLocked = errors.New("output directory is locked by another run")

// SideSummary describes the aggregation of one book.
type SideSummary struct {
	Book     string
	Chapters int
	Stats    entities.Stats
	Forms    int
	// Kept is the number of forms (or groups for the source side) at or above
	// the noise floor.
	Kept int
}

// Result summarises a completed run.
type Result struct {
	RunID       string
	Source      SideSummary
	Target      SideSummary
	Candidates  int
	Pairs       []matching.Pair
	Flagged     []matching.Pair
	JSONPath    string
	PairPath    string
	CacheHits   int64
	CacheMisses int64
}

// Runner executes runs for one configuration.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	taggers   map[string]tagger.Tagger
	romanizer romanize.Romanizer
}

// Option customizes a Runner.
type Option func(*Runner)

// WithTagger replaces the configured tagger for side ("source" or "target").
func WithTagger(side string, t tagger.Tagger) Option {
	return func(r *Runner) {
		r.taggers[side] = t
	}
}

// WithRomanizer replaces the pinyin romanizer.
func WithRomanizer(rz romanize.Romanizer) Option {
	return func(r *Runner) {
		if rz != nil {
			r.romanizer = rz
		}
	}
}

// New returns a Runner for cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		taggers:   make(map[string]tagger.Tagger),
		romanizer: romanize.NewPinyin(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the full pipeline and writes both artifacts.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.cfg
	if err := cfg.ValidateRun(); err != nil {
		return nil, err
	}
	if err := preflight.Error(preflight.RunAll(ctx, cfg, true)); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(cfg.Paths.OutputDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, cfg.Paths.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	result := &Result{RunID: uuid.NewString()}
	logger := r.logger.With(logging.String(logging.FieldRunID, result.RunID))
	logger.Info("run started",
		logging.String("source", cfg.Source.Path),
		logging.String("target", cfg.Target.Path),
		logging.Int("max_concurrency", cfg.Extraction.MaxConcurrency),
		logging.String("join_mode", cfg.Extraction.JoinMode),
	)

	if cfg.Tagger.Kind == config.TaggerKindRule {
		for side, b := range map[string]config.Book{config.SideSource: cfg.Source, config.SideTarget: cfg.Target} {
			if _, injected := r.taggers[side]; !injected && !language.Cased(b.Language) {
				logging.WarnWithContext(logger, "rule tagger cannot find names in an uncased script", "rule_tagger_uncased",
					logging.String(logging.FieldSide, side),
					logging.String("language", language.DisplayName(b.Language)),
					logging.String(logging.FieldBook, b.Path),
					logging.String(logging.FieldErrorHint, "set tagger.kind = \"http\" and point tagger.url at a tagging service"),
					logging.String(logging.FieldImpact, "this side will yield no proper nouns"),
				)
			}
		}
	}

	var cache *tagcache.Store
	if cfg.TagCache.Enabled {
		cache, err = tagcache.Open(cfg.TagCache.Path)
		if err != nil {
			return nil, fmt.Errorf("open tag cache: %w", err)
		}
		defer cache.Close()
	}

	extractor, err := entities.NewExtractor(cfg.Extraction.ProperNounTag, cfg.Extraction.JoinMode)
	if err != nil {
		return nil, err
	}

	var cached []*tagcache.Tagger
	aggregate := func(side string, b config.Book) (entities.Frequency, SideSummary, error) {
		summary := SideSummary{Book: b.Path}
		content, _, err := book.Load(ctx, b.Path, book.Options{
			ChapterLimit: cfg.Ingest.ChapterLimit,
			Logger:       logger,
		})
		if err != nil {
			return nil, summary, fmt.Errorf("load %s book: %w", side, err)
		}
		summary.Chapters = content.Len()

		tg, model, err := r.taggerFor(side)
		if err != nil {
			return nil, summary, err
		}
		if cache != nil {
			wrapped := tagcache.Wrap(tg, cache, model, logger)
			cached = append(cached, wrapped)
			tg = wrapped
		}

		freq, stats, err := entities.Aggregate(ctx, content, tg, entities.Options{
			MaxConcurrency: cfg.Extraction.MaxConcurrency,
			Extractor:      extractor,
			Logger:         logger,
			Side:           side,
		})
		if err != nil {
			return nil, summary, fmt.Errorf("aggregate %s book: %w", side, err)
		}
		summary.Stats = stats
		summary.Forms = len(freq)
		return freq, summary, nil
	}

	sourceFreq, sourceSummary, err := aggregate(config.SideSource, cfg.Source)
	if err != nil {
		return nil, err
	}
	targetFreq, targetSummary, err := aggregate(config.SideTarget, cfg.Target)
	if err != nil {
		return nil, err
	}

	groups := romanize.GroupForms(sourceFreq, r.romanizer, cfg.Matching.NoiseFloor, logger)
	sourceSummary.Kept = len(groups)
	targetNames := targetFreq.FilterMin(cfg.Matching.NoiseFloor)
	targetSummary.Kept = len(targetNames)
	result.Source = sourceSummary
	result.Target = targetSummary
	dumpIntermediate(logger, groups, targetNames)

	scorer, err := matching.ScorerByName(cfg.Matching.Scorer)
	if err != nil {
		return nil, err
	}
	candidates := matching.NewMatcher(scorer, cfg.Matching.MatchThreshold, logger).Match(groups, targetNames)
	result.Candidates = len(candidates)
	result.Pairs = matching.PostFilter(candidates, matching.Filter{
		MinSourceLength:    cfg.Matching.MinSourceLength,
		MinTargetUppercase: cfg.Matching.MinTargetUppercase,
	})

	result.JSONPath = cfg.JSONExportPath()
	if err := export.WriteJSON(result.JSONPath, result.Pairs); err != nil {
		return nil, err
	}
	result.PairPath = cfg.PairExportPath()
	written, err := export.WritePairs(result.PairPath, result.Pairs, cfg.Export.PairDelimiter)
	if err != nil {
		return nil, err
	}
	result.Flagged = written.Flagged
	for _, p := range written.Flagged {
		logging.WarnWithContext(logger, "pair left out of pair file", "pair_delimiter_collision",
			logging.String("source", p.Source),
			logging.String("target", p.Target),
			logging.String(logging.FieldErrorHint, "choose a pair_delimiter that no name contains"),
			logging.String(logging.FieldImpact, "pair is only present in the json export"),
		)
	}

	for _, c := range cached {
		result.CacheHits += c.Hits()
		result.CacheMisses += c.Misses()
	}

	logger.Info("run finished",
		logging.Int("candidates", result.Candidates),
		logging.Int("pairs", len(result.Pairs)),
		logging.Int("flagged", len(result.Flagged)),
		logging.String("json", result.JSONPath),
		logging.String("pair_file", result.PairPath),
	)
	return result, nil
}

func (r *Runner) taggerFor(side string) (tagger.Tagger, string, error) {
	if tg, ok := r.taggers[side]; ok {
		return tg, "custom:" + r.cfg.ModelFor(side), nil
	}
	return newTagger(r.cfg, side)
}

func dumpIntermediate(logger *slog.Logger, groups romanize.Groups, target entities.Frequency) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, g := range groups.Sorted() {
		logger.Debug("source group",
			logging.String("key", g.Key),
			logging.Int("count", g.Count),
			slog.Any("forms", g.Forms),
		)
	}
	for _, e := range target.Ranked() {
		logger.Debug("target name",
			logging.String("form", e.Form),
			logging.Int("count", e.Count),
		)
	}
}
