package tagcache

import (
	"context"
	"log/slog"
	"sync/atomic"

	"nounmap/internal/logging"
	"nounmap/internal/tagger"
)

// Tagger consults the cache before delegating to the wrapped tagger and
// stores fresh results. Cache failures degrade to uncached tagging.
type Tagger struct {
	inner  tagger.Tagger
	store  *Store
	model  string
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Wrap returns a caching tagger for one model.
func Wrap(inner tagger.Tagger, store *Store, model string, logger *slog.Logger) *Tagger {
	return &Tagger{
		inner:  inner,
		store:  store,
		model:  model,
		logger: logging.NewComponentLogger(logger, "tagcache"),
	}
}

// Tag implements tagger.Tagger.
func (t *Tagger) Tag(ctx context.Context, text string) ([]tagger.Token, error) {
	if tokens, ok, err := t.store.Get(ctx, t.model, text); err != nil {
		logging.WarnWithContext(t.logger, "tag cache read failed", "tag_cache_read_failed",
			logging.String(logging.FieldImpact, "paragraph is tagged without the cache"),
			logging.Error(err),
		)
	} else if ok {
		t.hits.Add(1)
		return tokens, nil
	}

	t.misses.Add(1)
	tokens, err := t.inner.Tag(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := t.store.Put(ctx, t.model, text, tokens); err != nil {
		logging.WarnWithContext(t.logger, "tag cache write failed", "tag_cache_write_failed",
			logging.String(logging.FieldImpact, "paragraph will be tagged again next run"),
			logging.Error(err),
		)
	}
	return tokens, nil
}

// HealthCheck forwards to the wrapped tagger when it supports health checks.
func (t *Tagger) HealthCheck(ctx context.Context) error {
	if hc, ok := t.inner.(tagger.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Hits returns the number of cache hits so far.
func (t *Tagger) Hits() int64 { return t.hits.Load() }

// Misses returns the number of cache misses so far.
func (t *Tagger) Misses() int64 { return t.misses.Load() }
