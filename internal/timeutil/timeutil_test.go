package timeutil

import (
	"testing"
	"time"
)

var moscow = time.FixedZone("UTC+3", 3*3600)

func TestFormatDateTimeAppliesOffset(t *testing.T) {
	stored := time.Date(2025, time.March, 5, 21, 30, 0, 0, time.UTC)

	got := FormatDateTime(stored, moscow)
	if got != "06.03.2025 00:30" {
		t.Fatalf("want 06.03.2025 00:30, got %s", got)
	}
}

func TestFormatDateTimeNilLocationFallsBackToUTC(t *testing.T) {
	stored := time.Date(2025, time.March, 5, 21, 30, 0, 0, time.UTC)

	if got := FormatDateTime(stored, nil); got != "05.03.2025 21:30" {
		t.Fatalf("want 05.03.2025 21:30, got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	stored := time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)

	if got := FormatDate(stored, moscow); got != "01.01.2026" {
		t.Fatalf("want 01.01.2026, got %s", got)
	}
}

func TestDayMonthLabel(t *testing.T) {
	d := time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC)
	if got := DayMonthLabel(d); got != "09.07" {
		t.Fatalf("want 09.07, got %s", got)
	}
}

func TestWindowStart(t *testing.T) {
	end := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		days int
		want time.Time
	}{
		{days: 7, want: time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)},
		{days: 1, want: end},
		{days: 0, want: end},
	}
	for _, tt := range tests {
		if got := WindowStart(end, tt.days); !got.Equal(tt.want) {
			t.Errorf("days=%d: want %s, got %s", tt.days, tt.want, got)
		}
	}
}

func TestTruncateToDay(t *testing.T) {
	ts := time.Date(2025, time.July, 10, 22, 15, 4, 0, time.UTC)
	got := TruncateToDay(ts, moscow)

	want := time.Date(2025, time.July, 11, 0, 0, 0, 0, moscow)
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
}
