package content

import (
	"context"

	"tawbah_bot/internal/model"
)

// seedQuotes is the built-in starter set written to an empty buffer so the
// first run has content before any remote fetch completes.
var seedQuotes = []model.NewContent{
	{Text: "Indeed, Allah loves those who are constantly repentant and loves those who purify themselves.", Source: "Surah Al-Baqarah 2:222"},
	{Text: "Do not despair of the mercy of Allah. Indeed, Allah forgives all sins.", Source: "Surah Az-Zumar 39:53"},
	{Text: "And whoever fears Allah - He will make for him a way out.", Source: "Surah At-Talaq 65:2"},
	{Text: "Every son of Adam commits sin, and the best of those who commit sin are those who repent.", Source: "Prophet Muhammad (صلى الله عليه وسلم)"},
	{Text: "Determine to remove the sin, regret what has passed, and resolve never to return to it.", Source: "Imam Al-Nawawi"},
	{Text: "Your past does not define you, your Tawbah does.", Source: "Islamic Wisdom"},
}

// FallbackQuote is shown when the daily wisdom partition is empty.
func FallbackQuote(lang model.Language) (text, source string) {
	if lang == model.LangBN {
		return "নিশ্চয়ই আল্লাহ ক্ষমাশীল।", "কুরআন"
	}
	return seedQuotes[0].Text, seedQuotes[0].Source
}

// Seed populates an empty buffer with the built-in English motivation quotes.
// It is a no-op when the buffer already has items.
func (b *Buffer) Seed(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}

	seeds := make([]model.NewContent, len(seedQuotes))
	copy(seeds, seedQuotes)
	for i := range seeds {
		seeds[i].Category = model.CategoryMotivation
		seeds[i].Language = model.LangEN
	}
	return b.enqueueLocked(ctx, items, seeds)
}
