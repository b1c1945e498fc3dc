package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tawbah_bot/internal/model"
)

func TestParseSetPinArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         string
		wantPin      string
		wantQuestion string
		wantAnswer   string
		wantErr      bool
	}{
		{
			name:         "well formed",
			args:         "1234 | first mosque | al-noor",
			wantPin:      "1234",
			wantQuestion: "first mosque",
			wantAnswer:   "al-noor",
		},
		{
			name:         "no padding",
			args:         "0000|q|a",
			wantPin:      "0000",
			wantQuestion: "q",
			wantAnswer:   "a",
		},
		{
			name:         "pipe inside answer survives",
			args:         "1234 | question | a|b",
			wantPin:      "1234",
			wantQuestion: "question",
			wantAnswer:   "a|b",
		},
		{name: "missing parts", args: "1234 | question", wantErr: true},
		{name: "empty answer", args: "1234 | question | ", wantErr: true},
		{name: "empty input", args: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin, question, answer, err := ParseSetPinArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q %q %q", pin, question, answer)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := []string{pin, question, answer}
			want := []string{tt.wantPin, tt.wantQuestion, tt.wantAnswer}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("parsed args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePrayTimeArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       string
		wantPrayer model.PrayerName
		wantTime   string
		wantErr    string
	}{
		{name: "exact name", args: "Fajr 04:45", wantPrayer: model.Fajr, wantTime: "04:45"},
		{name: "case insensitive", args: "maghrib 18:50", wantPrayer: model.Maghrib, wantTime: "18:50"},
		{name: "unknown prayer", args: "Midnight 02:00", wantErr: "unknown prayer"},
		{name: "bad time", args: "Isha 25:00", wantErr: "invalid time"},
		{name: "missing time", args: "Isha", wantErr: "usage"},
		{name: "empty", args: "", wantErr: "usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prayer, hhmm, err := ParsePrayTimeArgs(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if prayer != tt.wantPrayer || hhmm != tt.wantTime {
				t.Errorf("got (%s, %s), want (%s, %s)", prayer, hhmm, tt.wantPrayer, tt.wantTime)
			}
		})
	}
}

func TestParseMonthArg(t *testing.T) {
	now := time.Date(2025, time.May, 14, 12, 0, 0, 0, time.UTC)

	year, month, err := ParseMonthArg("", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2025 || month != time.May {
		t.Errorf("default month: got %d-%s, want 2025-May", year, month)
	}

	year, month, err = ParseMonthArg("2024-12", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2024 || month != time.December {
		t.Errorf("explicit month: got %d-%s, want 2024-December", year, month)
	}

	if _, _, err := ParseMonthArg("december", now); err == nil {
		t.Error("expected error for non-numeric month")
	}
}
