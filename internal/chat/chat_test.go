package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tawbah_bot/internal/model"
	"tawbah_bot/internal/state"
	"tawbah_bot/internal/store"
)

type mockCounselor struct {
	reply       string
	err         error
	gotHistory  []model.ChatMessage
	gotUserText string
	gotLang     model.Language
}

func (m *mockCounselor) Counsel(_ context.Context, history []model.ChatMessage, userText string, lang model.Language) (string, error) {
	m.gotHistory = history
	m.gotUserText = userText
	m.gotLang = lang
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func newTestService(t *testing.T, c Counselor) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	states := state.New(store.NewMemory(), log)
	return New(states, c, log)
}

func TestSendPersistsBothSides(t *testing.T) {
	ctx := context.Background()
	counselor := &mockCounselor{reply: "Allah's mercy is vast."}
	s := newTestService(t, counselor)

	reply, err := s.Send(ctx, "I slipped yesterday", model.LangEN)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if diff := cmp.Diff("Allah's mercy is vast.", reply); diff != "" {
		t.Errorf("reply mismatch (-want +got):\n%s", diff)
	}

	msgs, err := s.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || msgs[0].Text != "I slipped yesterday" {
		t.Errorf("user message mismatch: %+v", msgs[0])
	}
	if msgs[1].Sender != model.SenderAI || msgs[1].Text != reply {
		t.Errorf("ai message mismatch: %+v", msgs[1])
	}
	if msgs[0].ID == msgs[1].ID {
		t.Error("expected distinct message IDs")
	}
}

func TestSendPassesPriorHistoryAsContext(t *testing.T) {
	ctx := context.Background()
	counselor := &mockCounselor{reply: "reply"}
	s := newTestService(t, counselor)

	if _, err := s.Send(ctx, "first", model.LangEN); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := s.Send(ctx, "second", model.LangEN); err != nil {
		t.Fatalf("send: %v", err)
	}

	// The second call sees the first exchange but not its own message.
	var texts []string
	for _, m := range counselor.gotHistory {
		texts = append(texts, m.Text)
	}
	if diff := cmp.Diff([]string{"first", "reply"}, texts); diff != "" {
		t.Errorf("history context mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("second", counselor.gotUserText); diff != "" {
		t.Errorf("user text mismatch (-want +got):\n%s", diff)
	}
}

func TestSendApologizesOnFailure(t *testing.T) {
	tests := []struct {
		name string
		lang model.Language
		want string
	}{
		{name: "english apology", lang: model.LangEN, want: apologyEN},
		{name: "bengali apology", lang: model.LangBN, want: apologyBN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			counselor := &mockCounselor{err: fmt.Errorf("api status 500")}
			s := newTestService(t, counselor)

			reply, err := s.Send(ctx, "help me", tt.lang)
			if err != nil {
				t.Fatalf("send should swallow counselor errors: %v", err)
			}
			if diff := cmp.Diff(tt.want, reply); diff != "" {
				t.Errorf("apology mismatch (-want +got):\n%s", diff)
			}

			// The apology is stored like any other reply.
			msgs, err := s.History(ctx)
			if err != nil {
				t.Fatalf("history: %v", err)
			}
			if len(msgs) != 2 || msgs[1].Text != tt.want {
				t.Errorf("stored conversation mismatch: %+v", msgs)
			}
		})
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, &mockCounselor{reply: "r"})

	if _, err := s.Send(ctx, "hello", model.LangEN); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	msgs, err := s.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty history, got %d", len(msgs))
	}
}
