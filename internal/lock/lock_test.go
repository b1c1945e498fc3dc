package lock

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tawbah_bot/internal/state"
	"tawbah_bot/internal/store"
)

const testChat = int64(100)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(state.New(store.NewMemory(), log))
}

func TestDisabledLockIsAlwaysUnlocked(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	unlocked, err := m.IsUnlocked(ctx, testChat)
	if err != nil {
		t.Fatalf("is unlocked: %v", err)
	}
	if !unlocked {
		t.Error("expected unlocked while the lock is disabled")
	}
}

func TestEnableValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	tests := []struct {
		name     string
		pin      string
		question string
		answer   string
		wantErr  bool
	}{
		{name: "valid", pin: "1234", question: "First teacher?", answer: "Rahim"},
		{name: "pin too short", pin: "12", question: "q", answer: "a", wantErr: true},
		{name: "pin not digits", pin: "12ab", question: "q", answer: "a", wantErr: true},
		{name: "pin too long", pin: "12345", question: "q", answer: "a", wantErr: true},
		{name: "missing question", pin: "1234", question: "  ", answer: "a", wantErr: true},
		{name: "missing answer", pin: "1234", question: "q", answer: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Enable(ctx, tt.pin, tt.question, tt.answer)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnlockFlow(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Enable(ctx, "1234", "First teacher?", "Rahim"); err != nil {
		t.Fatalf("enable: %v", err)
	}

	unlocked, err := m.IsUnlocked(ctx, testChat)
	if err != nil {
		t.Fatalf("is unlocked: %v", err)
	}
	if unlocked {
		t.Error("expected locked right after enabling")
	}

	ok, err := m.Unlock(ctx, testChat, "0000")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if ok {
		t.Error("wrong PIN must not unlock")
	}

	ok, err = m.Unlock(ctx, testChat, "1234")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !ok {
		t.Fatal("correct PIN should unlock")
	}

	unlocked, err = m.IsUnlocked(ctx, testChat)
	if err != nil {
		t.Fatalf("is unlocked: %v", err)
	}
	if !unlocked {
		t.Error("expected unlocked after correct PIN")
	}

	// Unlocking one chat does not unlock another.
	other, err := m.IsUnlocked(ctx, testChat+1)
	if err != nil {
		t.Fatalf("is unlocked: %v", err)
	}
	if other {
		t.Error("another chat should still be locked")
	}

	m.Lock(testChat)
	unlocked, err = m.IsUnlocked(ctx, testChat)
	if err != nil {
		t.Fatalf("is unlocked: %v", err)
	}
	if unlocked {
		t.Error("expected locked after Lock")
	}
}

func TestRecover(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Enable(ctx, "1234", "First teacher?", "Rahim"); err != nil {
		t.Fatalf("enable: %v", err)
	}

	question, err := m.RecoveryQuestion(ctx)
	if err != nil {
		t.Fatalf("recovery question: %v", err)
	}
	if question != "First teacher?" {
		t.Errorf("question = %q", question)
	}

	_, ok, err := m.Recover(ctx, testChat, "wrong")
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if ok {
		t.Error("wrong answer must not recover")
	}

	// The comparison is case-insensitive and trims whitespace.
	pin, ok, err := m.Recover(ctx, testChat, "  rahim ")
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if !ok {
		t.Fatal("expected recovery to succeed")
	}
	if pin != "1234" {
		t.Errorf("recovered pin = %q", pin)
	}

	unlocked, err := m.IsUnlocked(ctx, testChat)
	if err != nil {
		t.Fatalf("is unlocked: %v", err)
	}
	if !unlocked {
		t.Error("expected unlocked after recovery")
	}
}

func TestDisableClearsSecrets(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if err := m.Enable(ctx, "1234", "q", "a"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := m.Disable(ctx); err != nil {
		t.Fatalf("disable: %v", err)
	}

	enabled, err := m.Enabled(ctx)
	if err != nil {
		t.Fatalf("enabled: %v", err)
	}
	if enabled {
		t.Error("expected lock disabled")
	}

	// With the secrets gone, recovery cannot succeed.
	_, ok, err := m.Recover(ctx, testChat, "a")
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if ok {
		t.Error("recovery should fail after disable")
	}
}
