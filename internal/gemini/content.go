package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"tawbah_bot/internal/model"
)

// FetchContent asks the model for count new quotes in the given language.
// The response is constrained to a JSON array of {text, source, category}
// via a response schema; items with an unknown category are rejected. The
// returned records are tagged with the requested language. The result may be
// shorter than requested.
func (c *Client) FetchContent(ctx context.Context, count int, lang model.Language) ([]model.NewContent, error) {
	prompt := fmt.Sprintf(`Generate %d unique Islamic motivational quotes/Hadiths in %s with references. Return strictly as a JSON list.
Ensure a mix of:
- Motivation for Salah (Prayer)
- Hope in Tawbah (Repentance)
- Warning about sins
Include accurate sources like "Sahih Bukhari", "Sahih Muslim", or "Surah [Name] [Verse]".`, count, lang.Label())

	req := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "ARRAY",
				Items: &schema{
					Type: "OBJECT",
					Properties: map[string]schema{
						"text":     {Type: "STRING"},
						"source":   {Type: "STRING"},
						"category": {Type: "STRING", Enum: []string{"Motivation", "Warning", "Hope"}},
					},
					Required: []string{"text", "source", "category"},
				},
			},
		},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var raw []model.NewContent
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse content list: %w", err)
	}

	items := make([]model.NewContent, 0, len(raw))
	for _, r := range raw {
		if r.Text == "" || !r.Category.Valid() {
			return nil, fmt.Errorf("invalid content item: text=%q category=%q", r.Text, r.Category)
		}
		r.Language = lang
		items = append(items, r)
	}
	return items, nil
}
