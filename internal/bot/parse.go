package bot

import (
	"fmt"
	"strings"
	"time"

	"tawbah_bot/internal/model"
)

// ParseSetPinArgs parses "/setpin <pin> | <question> | <answer>".
func ParseSetPinArgs(args string) (pin, question, answer string, err error) {
	parts := strings.SplitN(args, "|", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("usage: /setpin <pin> | <question> | <answer>")
	}
	pin = strings.TrimSpace(parts[0])
	question = strings.TrimSpace(parts[1])
	answer = strings.TrimSpace(parts[2])
	if pin == "" || question == "" || answer == "" {
		return "", "", "", fmt.Errorf("pin, question and answer are all required")
	}
	return pin, question, answer, nil
}

// ParsePrayTimeArgs parses "/praytime <prayer> <HH:MM>".
func ParsePrayTimeArgs(args string) (model.PrayerName, string, error) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("usage: /praytime <prayer> <HH:MM>")
	}

	var prayer model.PrayerName
	for _, p := range model.PrayerNames {
		if strings.EqualFold(string(p), parts[0]) {
			prayer = p
			break
		}
	}
	if prayer == "" {
		return "", "", fmt.Errorf("unknown prayer %q, use: Fajr, Dhuhr, Asr, Maghrib, Isha", parts[0])
	}

	if _, err := time.Parse("15:04", parts[1]); err != nil {
		return "", "", fmt.Errorf("invalid time %q, use HH:MM (24-hour)", parts[1])
	}
	return prayer, parts[1], nil
}

// ParseMonthArg parses an optional "YYYY-MM" argument, defaulting to the
// month of now.
func ParseMonthArg(args string, now time.Time) (int, time.Month, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q", s)
	}
	return t.Year(), t.Month(), nil
}
