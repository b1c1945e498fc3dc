package content

import (
	"context"
	"encoding/json"
	"fmt"

	"tawbah_bot/internal/model"
	"tawbah_bot/internal/store"
)

const dateLayout = "2006-01-02"

// DailyWisdom returns the quote of the day for the given language,
// consuming at most one buffer item per calendar day per language.
//
// The first call of a day consumes the next unseen item and records its ID
// under the (date, language) key; later calls the same day resolve that ID
// and return the identical item. If the recorded ID no longer resolves, nil
// is returned without picking a replacement, so the day's quote never
// changes after it has been shown once. An exhausted partition also yields
// nil; the caller applies the hardcoded fallback.
func (b *Buffer) DailyWisdom(ctx context.Context, lang model.Language) (*model.ContentItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := b.now().Format(dateLayout) + "_" + string(lang)

	wm, err := b.loadWisdomMap(ctx)
	if err != nil {
		return nil, err
	}

	if id, ok := wm[key]; ok {
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

	next, err := b.consumeLocked(ctx, lang)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}

	wm[key] = next.ID
	if err := b.saveWisdomMap(ctx, wm); err != nil {
		return nil, err
	}
	return next, nil
}

// loadWisdomMap must be called with b.mu held.
func (b *Buffer) loadWisdomMap(ctx context.Context) (map[string]string, error) {
	raw, ok, err := b.kv.Get(ctx, store.KeyDailyQuoteMap)
	if err != nil {
		return nil, err
	}
	wm := map[string]string{}
	if !ok {
		return wm, nil
	}
	if err := json.Unmarshal([]byte(raw), &wm); err != nil {
		b.log.Warn("corrupt daily quote map, starting empty", "error", err)
		return map[string]string{}, nil
	}
	return wm, nil
}

// saveWisdomMap must be called with b.mu held.
func (b *Buffer) saveWisdomMap(ctx context.Context, wm map[string]string) error {
	data, err := json.Marshal(wm)
	if err != nil {
		return fmt.Errorf("marshal daily quote map: %w", err)
	}
	return b.kv.Set(ctx, store.KeyDailyQuoteMap, string(data))
}
