// Package content owns the buffer of generated motivational items: counting
// unseen entries per language, appending fetched batches, consuming items in
// strict insertion order, and the once-per-day wisdom cache.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tawbah_bot/internal/model"
	"tawbah_bot/internal/store"
)

// Buffer manages the persisted collection of content items. All
// read-modify-write sequences on the stored list are serialized by an
// internal mutex, since the bot loop and the scheduler may both consume.
type Buffer struct {
	mu  sync.Mutex
	kv  store.KV
	log *slog.Logger
	now func() time.Time
}

// NewBuffer creates a Buffer on top of the given store.
func NewBuffer(kv store.KV, log *slog.Logger) *Buffer {
	return &Buffer{kv: kv, log: log, now: time.Now}
}

// SetClock overrides the time source (useful for testing).
func (b *Buffer) SetClock(now func() time.Time) {
	b.now = now
}

// CountUnseen returns how many items with the given language have not yet
// been shown. It has no side effects.
func (b *Buffer) CountUnseen(ctx context.Context, lang model.Language) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if !it.IsShown && it.Language == lang {
			n++
		}
	}
	return n, nil
}

// Enqueue appends the given records to the buffer in input order. Every item
// gets a fresh unique ID and the same insertion timestamp.
func (b *Buffer) Enqueue(ctx context.Context, newItems []model.NewContent) error {
	if len(newItems) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load(ctx)
	if err != nil {
		return err
	}
	return b.enqueueLocked(ctx, items, newItems)
}

// enqueueLocked appends newItems to items and persists. Must be called with
// b.mu held.
func (b *Buffer) enqueueLocked(ctx context.Context, items []model.ContentItem, newItems []model.NewContent) error {
	ts := b.now().UTC()
	for _, n := range newItems {
		items = append(items, model.ContentItem{
			ID:        uuid.NewString(),
			Text:      n.Text,
			Source:    n.Source,
			Category:  n.Category,
			Language:  n.Language,
			IsShown:   false,
			CreatedAt: ts,
		})
	}
	return b.save(ctx, items)
}

// ConsumeNextUnseen returns the oldest unseen item for the given language,
// marking it shown before returning. Returns nil when the partition is
// exhausted. This is the sole consumption primitive and is deliberately not
// idempotent: two consecutive calls yield two different items.
func (b *Buffer) ConsumeNextUnseen(ctx context.Context, lang model.Language) (*model.ContentItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consumeLocked(ctx, lang)
}

func (b *Buffer) consumeLocked(ctx context.Context, lang model.Language) (*model.ContentItem, error) {
	items, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].IsShown || items[i].Language != lang {
			continue
		}
		items[i].IsShown = true
		if err := b.save(ctx, items); err != nil {
			return nil, err
		}
		it := items[i]
		return &it, nil
	}
	return nil, nil
}

// MarkShown flips the shown flag of the item with the given ID. Unknown IDs
// are ignored.
func (b *Buffer) MarkShown(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			if items[i].IsShown {
				return nil
			}
			items[i].IsShown = true
			return b.save(ctx, items)
		}
	}
	return nil
}

// Find returns the item with the given ID, or nil if it is not in the buffer.
func (b *Buffer) Find(ctx context.Context, id string) (*model.ContentItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			it := items[i]
			return &it, nil
		}
	}
	return nil, nil
}

// load must be called with b.mu held. A stored value that fails to parse is
// logged and treated as an empty buffer.
func (b *Buffer) load(ctx context.Context) ([]model.ContentItem, error) {
	raw, ok, err := b.kv.Get(ctx, store.KeyContentBuffer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []model.ContentItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		b.log.Warn("corrupt content buffer, starting empty", "error", err)
		return nil, nil
	}
	return items, nil
}

// save must be called with b.mu held.
func (b *Buffer) save(ctx context.Context, items []model.ContentItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal content buffer: %w", err)
	}
	return b.kv.Set(ctx, store.KeyContentBuffer, string(data))
}
