// Package store defines the key-value persistence interface and its
// implementations. All application state lives under a fixed set of string
// keys with JSON-serialized values.
package store

import "context"

// Well-known keys. The tc_ prefix is kept for compatibility with state
// exported from the original mobile app.
const (
	KeySobrietyStart  = "tc_sobriety_start"
	KeyPrayerHistory  = "tc_prayer_history"
	KeySettings       = "tc_settings"
	KeyContentBuffer  = "tc_content_buffer"
	KeyDailyQuoteMap  = "tc_daily_quote_map"
	KeyRelapseHistory = "tc_relapse_history"
	KeyChatHistory    = "tc_chat_history"
	KeyNotifyChat     = "tc_notify_chat"
)

// KV is the interface for all persistence operations.
type KV interface {
	// Get returns the value for key. The second return is false when the
	// key has never been set.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	Close() error
}
