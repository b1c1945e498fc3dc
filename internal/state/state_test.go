package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tawbah_bot/internal/model"
	"tawbah_bot/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(kv, log), kv
}

func TestSobrietyStartFirstAccessPersists(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	fixed := time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return fixed })

	start, err := m.SobrietyStart(ctx)
	if err != nil {
		t.Fatalf("sobriety start: %v", err)
	}
	if !start.Equal(fixed) {
		t.Errorf("first access = %v, want %v", start, fixed)
	}

	// Later accesses return the stored value, not the current clock.
	m.SetClock(func() time.Time { return fixed.AddDate(0, 1, 0) })
	again, err := m.SobrietyStart(ctx)
	if err != nil {
		t.Fatalf("sobriety start: %v", err)
	}
	if !again.Equal(fixed) {
		t.Errorf("second access = %v, want %v", again, fixed)
	}
}

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	got, err := m.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if diff := cmp.Diff(model.DefaultSettings(), got); diff != "" {
		t.Errorf("default settings mismatch (-want +got):\n%s", diff)
	}

	got.Language = model.LangBN
	got.HourlyMotivation = false
	got.PrayerTimes[model.Fajr] = "04:45"
	if err := m.SaveSettings(ctx, got); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	reloaded, err := m.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if diff := cmp.Diff(got, reloaded); diff != "" {
		t.Errorf("settings round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsCorruptFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t)

	if err := kv.Set(ctx, store.KeySettings, "{broken"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := m.Settings(ctx)
	if err != nil {
		t.Fatalf("settings on corrupt value: %v", err)
	}
	if diff := cmp.Diff(model.DefaultSettings(), got); diff != "" {
		t.Errorf("expected defaults on corrupt settings (-want +got):\n%s", diff)
	}
}

func TestTogglePrayer(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	rec, err := m.TogglePrayer(ctx, "2025-04-01", model.Fajr)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !rec[model.Fajr] {
		t.Error("expected Fajr true after first toggle")
	}

	rec, err = m.TogglePrayer(ctx, "2025-04-01", model.Fajr)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if rec[model.Fajr] {
		t.Error("expected Fajr false after second toggle")
	}

	// Other days are untouched.
	h, err := m.PrayerHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(h) != 1 {
		t.Errorf("history has %d days, want 1", len(h))
	}
}

func TestRecordRelapseResetsStreak(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	oldStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := m.SetSobrietyStart(ctx, oldStart); err != nil {
		t.Fatalf("set start: %v", err)
	}

	relapseAt := time.Date(2025, 4, 2, 21, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return relapseAt })

	if err := m.RecordRelapse(ctx, "stress"); err != nil {
		t.Fatalf("record relapse: %v", err)
	}

	entries, err := m.RelapseHistory(ctx)
	if err != nil {
		t.Fatalf("relapse history: %v", err)
	}
	want := []model.RelapseEntry{{Date: relapseAt, Reason: "stress"}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("relapse history mismatch (-want +got):\n%s", diff)
	}

	start, err := m.SobrietyStart(ctx)
	if err != nil {
		t.Fatalf("sobriety start: %v", err)
	}
	if !start.Equal(relapseAt) {
		t.Errorf("start = %v, want reset to %v", start, relapseAt)
	}
}

func TestChatHistoryCappedAtFifty(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for i := 0; i < ChatHistoryCap+10; i++ {
		msg := model.ChatMessage{
			ID:        fmt.Sprintf("msg-%d", i),
			Text:      fmt.Sprintf("message %d", i),
			Sender:    model.SenderUser,
			Timestamp: time.Date(2025, 4, 1, 0, 0, i, 0, time.UTC),
		}
		if err := m.AppendChatMessage(ctx, msg); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	msgs, err := m.ChatHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if diff := cmp.Diff(ChatHistoryCap, len(msgs)); diff != "" {
		t.Fatalf("history length mismatch (-want +got):\n%s", diff)
	}

	// The oldest ten were dropped; order is preserved.
	if diff := cmp.Diff("msg-10", msgs[0].ID); diff != "" {
		t.Errorf("oldest message mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fmt.Sprintf("msg-%d", ChatHistoryCap+9), msgs[len(msgs)-1].ID); diff != "" {
		t.Errorf("newest message mismatch (-want +got):\n%s", diff)
	}
}

func TestClearChatHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	msg := model.ChatMessage{ID: "a", Text: "hi", Sender: model.SenderUser, Timestamp: time.Now()}
	if err := m.AppendChatMessage(ctx, msg); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := m.ClearChatHistory(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	msgs, err := m.ChatHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty history, got %d messages", len(msgs))
	}
}

func TestNotifyChatRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	id, err := m.NotifyChat(ctx)
	if err != nil {
		t.Fatalf("notify chat: %v", err)
	}
	if id != 0 {
		t.Errorf("expected 0 before registration, got %d", id)
	}

	if err := m.SetNotifyChat(ctx, 4242); err != nil {
		t.Fatalf("set notify chat: %v", err)
	}
	id, err = m.NotifyChat(ctx)
	if err != nil {
		t.Fatalf("notify chat: %v", err)
	}
	if diff := cmp.Diff(int64(4242), id); diff != "" {
		t.Errorf("notify chat mismatch (-want +got):\n%s", diff)
	}
}
