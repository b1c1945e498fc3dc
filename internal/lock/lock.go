// Package lock implements the PIN privacy lock with a security-question
// recovery path. The PIN and recovery pair persist in settings; which chats
// are currently unlocked is in-memory only, so every process restart starts
// locked.
package lock

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"tawbah_bot/internal/state"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Manager gates access behind a 4-digit PIN.
type Manager struct {
	states *state.Manager

	mu       sync.Mutex
	unlocked map[int64]bool
}

// New creates a lock Manager.
func New(states *state.Manager) *Manager {
	return &Manager{states: states, unlocked: make(map[int64]bool)}
}

// Enabled reports whether the privacy lock is switched on.
func (m *Manager) Enabled(ctx context.Context) (bool, error) {
	s, err := m.states.Settings(ctx)
	if err != nil {
		return false, err
	}
	return s.PrivacyLockEnabled, nil
}

// IsUnlocked reports whether the chat may use gated commands. A disabled
// lock counts as unlocked.
func (m *Manager) IsUnlocked(ctx context.Context, chatID int64) (bool, error) {
	enabled, err := m.Enabled(ctx)
	if err != nil {
		return false, err
	}
	if !enabled {
		return true, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unlocked[chatID], nil
}

// Unlock verifies the PIN and marks the chat unlocked on success.
func (m *Manager) Unlock(ctx context.Context, chatID int64, pin string) (bool, error) {
	s, err := m.states.Settings(ctx)
	if err != nil {
		return false, err
	}
	if !s.PrivacyLockEnabled || s.PrivacyPIN == "" || pin != s.PrivacyPIN {
		return false, nil
	}
	m.mu.Lock()
	m.unlocked[chatID] = true
	m.mu.Unlock()
	return true, nil
}

// Lock re-locks the chat.
func (m *Manager) Lock(chatID int64) {
	m.mu.Lock()
	delete(m.unlocked, chatID)
	m.mu.Unlock()
}

// Enable switches the lock on with the given PIN and recovery pair.
func (m *Manager) Enable(ctx context.Context, pin, question, answer string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("PIN must be exactly 4 digits")
	}
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return fmt.Errorf("recovery question and answer are required")
	}
	s, err := m.states.Settings(ctx)
	if err != nil {
		return err
	}
	s.PrivacyLockEnabled = true
	s.PrivacyPIN = pin
	s.RecoveryQuestion = strings.TrimSpace(question)
	s.RecoveryAnswer = strings.TrimSpace(answer)
	return m.states.SaveSettings(ctx, s)
}

// Disable switches the lock off and clears the PIN and recovery pair.
func (m *Manager) Disable(ctx context.Context) error {
	s, err := m.states.Settings(ctx)
	if err != nil {
		return err
	}
	s.PrivacyLockEnabled = false
	s.PrivacyPIN = ""
	s.RecoveryQuestion = ""
	s.RecoveryAnswer = ""
	return m.states.SaveSettings(ctx, s)
}

// RecoveryQuestion returns the configured security question, or empty if
// none is set.
func (m *Manager) RecoveryQuestion(ctx context.Context) (string, error) {
	s, err := m.states.Settings(ctx)
	if err != nil {
		return "", err
	}
	return s.RecoveryQuestion, nil
}

// Recover checks the security answer (case-insensitive, trimmed) and
// unlocks the chat on a match, returning the stored PIN so the user can see
// it again.
func (m *Manager) Recover(ctx context.Context, chatID int64, answer string) (string, bool, error) {
	s, err := m.states.Settings(ctx)
	if err != nil {
		return "", false, err
	}
	if s.RecoveryAnswer == "" {
		return "", false, nil
	}
	if !strings.EqualFold(strings.TrimSpace(answer), s.RecoveryAnswer) {
		return "", false, nil
	}
	m.mu.Lock()
	m.unlocked[chatID] = true
	m.mu.Unlock()
	return s.PrivacyPIN, true, nil
}
