package gemini

import (
	"context"
	"fmt"

	"tawbah_bot/internal/model"
)

const personaEN = `You are a compassionate Islamic spiritual counselor helping someone recover from addiction. ` +
	`Be warm, non-judgmental and concise. Ground your guidance in the Quran and authentic Hadith, ` +
	`encourage Tawbah and hope in Allah's mercy, and never shame the person. ` +
	`If they mention self-harm, urge them to seek immediate help from family or professionals.`

const personaBN = personaEN + ` Reply in Bengali.`

// Counsel sends the conversation so far plus a new user message and returns
// the counselor's reply.
func (c *Client) Counsel(ctx context.Context, history []model.ChatMessage, userText string, lang model.Language) (string, error) {
	persona := personaEN
	if lang == model.LangBN {
		persona = personaBN
	}

	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Sender == model.SenderAI {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: msg.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: userText}}})

	req := generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: persona}}},
	}

	reply, err := c.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("counsel: %w", err)
	}
	return reply, nil
}
