// Package refill keeps the content buffer stocked by fetching new batches
// from the remote generator when the unseen count runs low.
package refill

import (
	"context"
	"log/slog"
	"sync/atomic"

	"tawbah_bot/internal/model"
)

// Threshold and batch size for refills. A partition with fewer than
// Threshold unseen items triggers a fetch of BatchSize new ones.
const (
	Threshold = 30
	BatchSize = 50
)

// BufferStore is the subset of the content buffer the controller needs.
type BufferStore interface {
	CountUnseen(ctx context.Context, lang model.Language) (int, error)
	Enqueue(ctx context.Context, items []model.NewContent) error
}

// Fetcher produces new content items from the remote generator.
type Fetcher interface {
	FetchContent(ctx context.Context, count int, lang model.Language) ([]model.NewContent, error)
}

// Controller guards refills against overlapping triggers and offline state.
// The in-flight flag is global, not per-language: refills for two languages
// never overlap.
type Controller struct {
	buffer   BufferStore
	fetcher  Fetcher
	log      *slog.Logger
	online   func() bool
	inFlight atomic.Bool
}

// New creates a Controller. The online hook defaults to always-true; a
// failed fetch degrades the same way going offline would.
func New(buffer BufferStore, fetcher Fetcher, log *slog.Logger) *Controller {
	return &Controller{
		buffer:  buffer,
		fetcher: fetcher,
		log:     log,
		online:  func() bool { return true },
	}
}

// SetOnlineCheck overrides the connectivity probe (useful for testing).
func (c *Controller) SetOnlineCheck(online func() bool) {
	c.online = online
}

// MaybeRefill fetches a batch for lang when all preconditions hold: the
// connectivity flag is up, no refill is already in flight, and the unseen
// count is below the threshold. Failures are logged and swallowed; the next
// trigger (app start, language change, hourly consumption) retries
// naturally since the count stays low.
func (c *Controller) MaybeRefill(ctx context.Context, lang model.Language) {
	if !c.online() {
		return
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer c.inFlight.Store(false)

	count, err := c.buffer.CountUnseen(ctx, lang)
	if err != nil {
		c.log.Error("count unseen", "language", lang, "error", err)
		return
	}
	if count >= Threshold {
		return
	}

	items, err := c.fetcher.FetchContent(ctx, BatchSize, lang)
	if err != nil {
		c.log.Error("fetch content", "language", lang, "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	if err := c.buffer.Enqueue(ctx, items); err != nil {
		c.log.Error("enqueue fetched content", "language", lang, "error", err)
		return
	}
	c.log.Info("refilled content buffer", "language", lang, "count", len(items))
}
