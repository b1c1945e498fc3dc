// Package model defines the domain types used across the application.
package model

import "time"

// Language selects which content partition and translation table is active.
type Language string

// Supported languages.
const (
	LangEN Language = "EN"
	LangBN Language = "BN"
)

// Label returns the human-readable language name used in generation prompts.
func (l Language) Label() string {
	if l == LangBN {
		return "Bengali"
	}
	return "English"
}

// Category classifies a piece of generated content.
type Category string

// Supported content categories.
const (
	CategoryMotivation Category = "Motivation"
	CategoryWarning    Category = "Warning"
	CategoryHope       Category = "Hope"
)

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMotivation, CategoryWarning, CategoryHope:
		return true
	}
	return false
}

// ContentItem is a single piece of motivational text held in the buffer.
type ContentItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Category  Category  `json:"category"`
	Language  Language  `json:"language"`
	IsShown   bool      `json:"isShown"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewContent is a content record as produced by the remote fetcher,
// before an ID and timestamp are assigned at insertion.
type NewContent struct {
	Text     string   `json:"text"`
	Source   string   `json:"source"`
	Category Category `json:"category"`
	Language Language `json:"language"`
}

// PrayerName identifies one of the five daily prayers.
type PrayerName string

// The five daily prayers, in order.
const (
	Fajr    PrayerName = "Fajr"
	Dhuhr   PrayerName = "Dhuhr"
	Asr     PrayerName = "Asr"
	Maghrib PrayerName = "Maghrib"
	Isha    PrayerName = "Isha"
)

// PrayerNames lists the five prayers in their daily order.
var PrayerNames = []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

// PrayerRecord marks which prayers were completed on a single day.
type PrayerRecord map[PrayerName]bool

// PrayerHistory maps a YYYY-MM-DD date string to that day's record.
type PrayerHistory map[string]PrayerRecord

// PrayerTimes holds the configured HH:MM time for each prayer.
type PrayerTimes map[PrayerName]string

// Settings holds all user-tunable application state.
type Settings struct {
	Language             Language    `json:"language"`
	NotificationsEnabled bool        `json:"notificationsEnabled"`
	HourlyMotivation     bool        `json:"hourlyMotivation"`
	PrivacyLockEnabled   bool        `json:"isPrivacyLockEnabled"`
	PrivacyPIN           string      `json:"privacyPin"`
	RecoveryQuestion     string      `json:"recoveryQuestion"`
	RecoveryAnswer       string      `json:"recoveryAnswer"`
	PrayerTimes          PrayerTimes `json:"prayerTimes"`
}

// DefaultSettings returns the initial configuration for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Language:             LangEN,
		NotificationsEnabled: true,
		HourlyMotivation:     true,
		PrayerTimes: PrayerTimes{
			Fajr:    "05:00",
			Dhuhr:   "13:00",
			Asr:     "16:30",
			Maghrib: "18:45",
			Isha:    "20:30",
		},
	}
}

// RelapseEntry records a single streak reset and its stated reason.
type RelapseEntry struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// Sender identifies who authored a chat message.
type Sender string

// Chat message senders.
const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage is one entry in the counselor conversation history.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
