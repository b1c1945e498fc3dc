// Package scheduler drives the timed behaviors: the hourly motivation
// notification and the per-prayer reminders.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tawbah_bot/internal/content"
	"tawbah_bot/internal/i18n"
	"tawbah_bot/internal/model"
	"tawbah_bot/internal/refill"
	"tawbah_bot/internal/state"
)

// Motivation notifications only fire inside this local-hour window.
const (
	motivationStartHour = 8
	motivationEndHour   = 22
)

// Sender is the interface for sending Telegram messages.
type Sender interface {
	SendMessage(chatID int64, text string)
}

// Scheduler periodically consumes buffer items and sends reminders.
type Scheduler struct {
	states  *state.Manager
	buffer  *content.Buffer
	refills *refill.Controller
	sender  Sender
	log     *slog.Logger
	tick    time.Duration
	now     func() time.Time

	lastMotivationHour int
	lastAlarmDate      map[model.PrayerName]string
}

// New creates a Scheduler with the default 1-minute tick.
func New(states *state.Manager, buffer *content.Buffer, refills *refill.Controller, sender Sender, log *slog.Logger) *Scheduler {
	return &Scheduler{
		states:             states,
		buffer:             buffer,
		refills:            refills,
		sender:             sender,
		log:                log,
		tick:               1 * time.Minute,
		now:                time.Now,
		lastMotivationHour: -1,
		lastAlarmDate:      make(map[model.PrayerName]string),
	}
}

// SetTickInterval overrides the default 1-minute tick.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	s.tick = d
}

// SetClock overrides the time source (useful for testing).
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Run starts the scheduler loop, blocking until ctx is cancelled. The first
// hour boundary after startup is skipped so a restart never fires an
// immediate notification.
func (s *Scheduler) Run(ctx context.Context) {
	s.lastMotivationHour = s.now().Hour()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one scheduling pass. Exported so tests can drive it directly.
func (s *Scheduler) Tick(ctx context.Context) {
	chatID, err := s.states.NotifyChat(ctx)
	if err != nil {
		s.log.Error("load notify chat", "error", err)
		return
	}
	if chatID == 0 {
		return
	}

	settings, err := s.states.Settings(ctx)
	if err != nil {
		s.log.Error("load settings", "error", err)
		return
	}

	now := s.now()
	s.maybeMotivate(ctx, chatID, settings, now)
	s.maybePrayerAlarm(chatID, settings, now)
}

// maybeMotivate sends one buffer item when the hour rolls over inside the
// notification window, then lets the refill controller top the buffer up.
func (s *Scheduler) maybeMotivate(ctx context.Context, chatID int64, settings model.Settings, now time.Time) {
	if !settings.HourlyMotivation {
		return
	}
	hour := now.Hour()
	if hour == s.lastMotivationHour {
		return
	}
	s.lastMotivationHour = hour
	if hour < motivationStartHour || hour > motivationEndHour {
		return
	}

	item, err := s.buffer.ConsumeNextUnseen(ctx, settings.Language)
	if err != nil {
		s.log.Error("consume for motivation", "language", settings.Language, "error", err)
		return
	}
	if item == nil {
		// Under-stocked partition; the refill below restocks for next hour.
		s.refills.MaybeRefill(ctx, settings.Language)
		return
	}

	t := i18n.T(settings.Language)
	s.sender.SendMessage(chatID, fmt.Sprintf("%s\n\n\"%s\"\n— %s", t.HourlyReminder, item.Text, item.Source))
	s.log.Info("sent hourly motivation", "language", settings.Language, "item_id", item.ID)

	s.refills.MaybeRefill(ctx, settings.Language)
}

// maybePrayerAlarm sends each prayer's reminder at its configured HH:MM,
// at most once per prayer per day.
func (s *Scheduler) maybePrayerAlarm(chatID int64, settings model.Settings, now time.Time) {
	if !settings.NotificationsEnabled {
		return
	}
	hhmm := now.Format("15:04")
	today := now.Format("2006-01-02")
	t := i18n.T(settings.Language)

	for _, prayer := range model.PrayerNames {
		if settings.PrayerTimes[prayer] != hhmm {
			continue
		}
		if s.lastAlarmDate[prayer] == today {
			continue
		}
		s.lastAlarmDate[prayer] = today
		s.sender.SendMessage(chatID, fmt.Sprintf(t.PrayerReminder, prayer))
		s.log.Info("sent prayer reminder", "prayer", prayer)
	}
}
