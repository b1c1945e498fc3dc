// Package state provides typed access to the session data kept in the
// key-value store: sobriety start, prayer history, settings, relapse and
// chat history. Values are JSON strings; a value that fails to parse is
// treated as absent and replaced by defaults rather than aborting.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tawbah_bot/internal/model"
	"tawbah_bot/internal/store"
)

// ChatHistoryCap is the number of chat messages retained on write.
const ChatHistoryCap = 50

// Manager reads and writes session state through the key-value store.
type Manager struct {
	kv  store.KV
	log *slog.Logger
	now func() time.Time
}

// New creates a Manager on top of the given store.
func New(kv store.KV, log *slog.Logger) *Manager {
	return &Manager{kv: kv, log: log, now: time.Now}
}

// SetClock overrides the time source (useful for testing).
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// SobrietyStart returns the sobriety start timestamp. On first access the
// current time is persisted and returned.
func (m *Manager) SobrietyStart(ctx context.Context) (time.Time, error) {
	raw, ok, err := m.kv.Get(ctx, store.KeySobrietyStart)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr == nil {
			return t, nil
		}
		m.log.Warn("invalid sobriety start, resetting", "value", raw, "error", perr)
	}
	start := m.now().UTC()
	if err := m.SetSobrietyStart(ctx, start); err != nil {
		return time.Time{}, err
	}
	return start, nil
}

// SetSobrietyStart persists a new sobriety start timestamp.
func (m *Manager) SetSobrietyStart(ctx context.Context, t time.Time) error {
	return m.kv.Set(ctx, store.KeySobrietyStart, t.UTC().Format(time.RFC3339))
}

// Settings returns the stored settings merged over the defaults, so fields
// added after the data was written still get sensible values.
func (m *Manager) Settings(ctx context.Context) (model.Settings, error) {
	s := model.DefaultSettings()
	raw, ok, err := m.kv.Get(ctx, store.KeySettings)
	if err != nil {
		return s, err
	}
	if !ok {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.log.Warn("corrupt settings, falling back to defaults", "error", err)
		return model.DefaultSettings(), nil
	}
	if s.Language != model.LangEN && s.Language != model.LangBN {
		s.Language = model.LangEN
	}
	if s.PrayerTimes == nil {
		s.PrayerTimes = model.DefaultSettings().PrayerTimes
	}
	return s, nil
}

// SaveSettings persists the given settings.
func (m *Manager) SaveSettings(ctx context.Context, s model.Settings) error {
	return m.setJSON(ctx, store.KeySettings, s)
}

// PrayerHistory returns the full prayer history.
func (m *Manager) PrayerHistory(ctx context.Context) (model.PrayerHistory, error) {
	h := model.PrayerHistory{}
	if err := m.getJSON(ctx, store.KeyPrayerHistory, &h); err != nil {
		return nil, err
	}
	if h == nil {
		h = model.PrayerHistory{}
	}
	return h, nil
}

// TogglePrayer flips one prayer's completion flag for the given date and
// returns the updated record for that day.
func (m *Manager) TogglePrayer(ctx context.Context, date string, prayer model.PrayerName) (model.PrayerRecord, error) {
	h, err := m.PrayerHistory(ctx)
	if err != nil {
		return nil, err
	}
	rec := h[date]
	if rec == nil {
		rec = model.PrayerRecord{}
	}
	rec[prayer] = !rec[prayer]
	h[date] = rec
	if err := m.setJSON(ctx, store.KeyPrayerHistory, h); err != nil {
		return nil, err
	}
	return rec, nil
}

// RelapseHistory returns all recorded relapses, oldest first.
func (m *Manager) RelapseHistory(ctx context.Context) ([]model.RelapseEntry, error) {
	var entries []model.RelapseEntry
	if err := m.getJSON(ctx, store.KeyRelapseHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordRelapse appends a relapse entry and resets the sobriety start to now.
func (m *Manager) RecordRelapse(ctx context.Context, reason string) error {
	entries, err := m.RelapseHistory(ctx)
	if err != nil {
		return err
	}
	now := m.now().UTC()
	entries = append(entries, model.RelapseEntry{Date: now, Reason: reason})
	if err := m.setJSON(ctx, store.KeyRelapseHistory, entries); err != nil {
		return err
	}
	return m.SetSobrietyStart(ctx, now)
}

// ChatHistory returns the stored counselor conversation, oldest first.
func (m *Manager) ChatHistory(ctx context.Context) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	if err := m.getJSON(ctx, store.KeyChatHistory, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// AppendChatMessage stores a message, keeping only the most recent
// ChatHistoryCap entries.
func (m *Manager) AppendChatMessage(ctx context.Context, msg model.ChatMessage) error {
	msgs, err := m.ChatHistory(ctx)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)
	if len(msgs) > ChatHistoryCap {
		msgs = msgs[len(msgs)-ChatHistoryCap:]
	}
	return m.setJSON(ctx, store.KeyChatHistory, msgs)
}

// NotifyChat returns the Telegram chat that receives scheduled reminders,
// or 0 if none is registered yet.
func (m *Manager) NotifyChat(ctx context.Context) (int64, error) {
	raw, ok, err := m.kv.Get(ctx, store.KeyNotifyChat)
	if err != nil || !ok {
		return 0, err
	}
	id, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil {
		m.log.Warn("invalid notify chat, ignoring", "value", raw)
		return 0, nil
	}
	return id, nil
}

// SetNotifyChat registers the chat that receives scheduled reminders.
func (m *Manager) SetNotifyChat(ctx context.Context, chatID int64) error {
	return m.kv.Set(ctx, store.KeyNotifyChat, strconv.FormatInt(chatID, 10))
}

// ClearChatHistory removes the stored conversation.
func (m *Manager) ClearChatHistory(ctx context.Context) error {
	return m.kv.Delete(ctx, store.KeyChatHistory)
}

func (m *Manager) getJSON(ctx context.Context, key string, v any) error {
	raw, ok, err := m.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		m.log.Warn("corrupt stored value, treating as empty", "key", key, "error", err)
	}
	return nil
}

func (m *Manager) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return m.kv.Set(ctx, key, string(data))
}
