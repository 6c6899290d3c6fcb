package logging

import (
	"log/slog"
	"sync"
)

// Countdown reports how many units of work remain. It emits an INFO line
// when the remaining share crosses each bucket boundary (every 10% by
// default) plus a final line at zero, so large phases log a bounded number
// of lines. Safe for concurrent use.
type Countdown struct {
	mu         sync.Mutex
	logger     *slog.Logger
	unit       string
	total      int
	remaining  int
	bucketSize int
	lastBucket int
}

// NewCountdown returns a countdown over total units. A bucketPercent of zero
// or less selects 10.
func NewCountdown(logger *slog.Logger, unit string, total, bucketPercent int) *Countdown {
	if bucketPercent <= 0 || bucketPercent > 100 {
		bucketPercent = 10
	}
	if logger == nil {
		logger = NewNop()
	}
	return &Countdown{
		logger:     logger,
		unit:       unit,
		total:      total,
		remaining:  total,
		bucketSize: bucketPercent,
		lastBucket: -1,
	}
}

// Done marks n units complete and logs if a new bucket was reached.
// It returns the remaining count.
func (c *Countdown) Done(n int) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 || c.remaining == 0 {
		return c.remaining
	}
	c.remaining -= n
	if c.remaining < 0 {
		c.remaining = 0
	}

	donePercent := 100
	if c.total > 0 {
		donePercent = (c.total - c.remaining) * 100 / c.total
	}
	bucket := donePercent / c.bucketSize
	if bucket > c.lastBucket || c.remaining == 0 {
		c.lastBucket = bucket
		c.logger.Info("remaining "+c.unit,
			slog.Int("remaining", c.remaining),
			slog.Int("total", c.total),
		)
	}
	return c.remaining
}

// Remaining returns the outstanding unit count.
func (c *Countdown) Remaining() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}
