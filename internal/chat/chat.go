// Package chat is the AI counselor conversation service: it persists the
// message history (capped) and turns counselor failures into a localized
// apology instead of an error.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tawbah_bot/internal/model"
	"tawbah_bot/internal/state"
)

const (
	apologyEN = "I am sorry, I could not respond right now. Please try again in a moment, Insha'Allah."
	apologyBN = "আমি দুঃখিত, এই মুহূর্তে উত্তর দিতে পারছি না। ইনশাআল্লাহ, কিছুক্ষণ পর আবার চেষ্টা করুন।"
)

// Counselor is the remote collaborator that answers user messages.
type Counselor interface {
	Counsel(ctx context.Context, history []model.ChatMessage, userText string, lang model.Language) (string, error)
}

// Service manages the counselor conversation.
type Service struct {
	states    *state.Manager
	counselor Counselor
	log       *slog.Logger
	now       func() time.Time
}

// New creates a chat Service.
func New(states *state.Manager, counselor Counselor, log *slog.Logger) *Service {
	return &Service{states: states, counselor: counselor, log: log, now: time.Now}
}

// SetClock overrides the time source (useful for testing).
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Send stores the user's message, asks the counselor for a reply with the
// prior history as context, stores and returns the reply. A counselor
// failure yields the localized apology string; the conversation itself never
// errors past store failures.
func (s *Service) Send(ctx context.Context, userText string, lang model.Language) (string, error) {
	history, err := s.states.ChatHistory(ctx)
	if err != nil {
		return "", err
	}

	userMsg := model.ChatMessage{
		ID:        uuid.NewString(),
		Text:      userText,
		Sender:    model.SenderUser,
		Timestamp: s.now().UTC(),
	}
	if err := s.states.AppendChatMessage(ctx, userMsg); err != nil {
		return "", err
	}

	replyText, err := s.counselor.Counsel(ctx, history, userText, lang)
	if err != nil {
		s.log.Error("counselor reply", "error", err)
		replyText = apologyEN
		if lang == model.LangBN {
			replyText = apologyBN
		}
	}

	aiMsg := model.ChatMessage{
		ID:        uuid.NewString(),
		Text:      replyText,
		Sender:    model.SenderAI,
		Timestamp: s.now().UTC(),
	}
	if err := s.states.AppendChatMessage(ctx, aiMsg); err != nil {
		return "", err
	}
	return replyText, nil
}

// History returns the stored conversation, oldest first.
func (s *Service) History(ctx context.Context) ([]model.ChatMessage, error) {
	return s.states.ChatHistory(ctx)
}

// Clear removes the stored conversation.
func (s *Service) Clear(ctx context.Context) error {
	return s.states.ClearChatHistory(ctx)
}
