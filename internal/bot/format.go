package bot

import (
	"fmt"
	"strings"
	"time"

	"tawbah_bot/internal/i18n"
	"tawbah_bot/internal/model"
)

func tr(lang model.Language) i18n.Strings {
	return i18n.T(lang)
}

// FormatStreak renders the clean-time counter since start.
func FormatStreak(start, now time.Time, lang model.Language) string {
	t := i18n.T(lang)
	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	days := int(elapsed.Hours()) / 24
	hours := int(elapsed.Hours()) % 24
	mins := int(elapsed.Minutes()) % 60
	return fmt.Sprintf("%s\n\n%d %s  %d %s  %d %s", t.CleanTime, days, t.Days, hours, t.Hours, mins, t.Mins)
}

// FormatSOS renders the crisis panel: the ayah, its translation, and the
// grounding actions.
func FormatSOS(lang model.Language) string {
	t := i18n.T(lang)
	var b strings.Builder
	b.WriteString("أَلَمْ يَعْلَم بِأَنَّ ٱللَّهَ يَرَىٰ\n")
	fmt.Fprintf(&b, "\"%s\"\n— Surah Al-Alaq 96:14\n\n", t.SOSTitle)
	for i, action := range t.SOSActions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, action)
	}
	return b.String()
}

// FormatRelapses renders the relapse history, oldest first.
func FormatRelapses(entries []model.RelapseEntry) string {
	if len(entries) == 0 {
		return "No relapses recorded. Alhamdulillah, keep going."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Relapse history (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s — %s", e.Date.Format("2006-01-02"), e.Reason)
	}
	return b.String()
}

// FormatSettings renders the current configuration. The PIN itself is never
// echoed.
func FormatSettings(s model.Settings) string {
	var b strings.Builder
	b.WriteString("Settings:\n")
	fmt.Fprintf(&b, "\nLanguage: %s", s.Language.Label())
	fmt.Fprintf(&b, "\nPrayer reminders: %s", onOff(s.NotificationsEnabled))
	fmt.Fprintf(&b, "\nHourly motivation: %s", onOff(s.HourlyMotivation))
	fmt.Fprintf(&b, "\nPrivacy lock: %s", onOff(s.PrivacyLockEnabled))
	b.WriteString("\n\nPrayer times:")
	for _, p := range model.PrayerNames {
		fmt.Fprintf(&b, "\n  %s %s", s.PrayerTimes[p], p)
	}
	return b.String()
}

// FormatCalendar renders a month of prayer history, one line per day with a
// mark per completed prayer.
func FormatCalendar(history model.PrayerHistory, year int, month time.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", month, year)

	tracked := 0
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		rec, ok := history[d.Format("2006-01-02")]
		if !ok {
			continue
		}
		done := 0
		for _, p := range model.PrayerNames {
			if rec[p] {
				done++
			}
		}
		marks := strings.Repeat("●", done) + strings.Repeat("○", len(model.PrayerNames)-done)
		fmt.Fprintf(&b, "\n%02d  %s  %d/5", d.Day(), marks, done)
		tracked++
	}

	if tracked == 0 {
		b.WriteString("\nNo prayers tracked this month yet.")
	}
	return b.String()
}
