package transport

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatesInRangeThreeDays(t *testing.T) {
	dates := DatesInRange(day(2026, time.March, 10), day(2026, time.March, 12))

	if len(dates) != 3 {
		t.Fatalf("expected 3 days, got %d", len(dates))
	}

	want := []time.Time{
		day(2026, time.March, 10),
		day(2026, time.March, 11),
		day(2026, time.March, 12),
	}
	for i, w := range want {
		if !dates[i].Equal(w) {
			t.Fatalf("day %d: expected %v, got %v", i, w, dates[i])
		}
	}
}

func TestDatesInRangeSingleDay(t *testing.T) {
	dates := DatesInRange(day(2026, time.March, 10), day(2026, time.March, 10))

	if len(dates) != 1 {
		t.Fatalf("expected 1 day, got %d", len(dates))
	}
	if !dates[0].Equal(day(2026, time.March, 10)) {
		t.Fatalf("expected 2026-03-10, got %v", dates[0])
	}
}

func TestDatesInRangeInverted(t *testing.T) {
	dates := DatesInRange(day(2026, time.March, 12), day(2026, time.March, 10))

	if dates != nil {
		t.Fatalf("expected nil for inverted range, got %v", dates)
	}
}

func TestDatesInRangeAcrossMonthBoundary(t *testing.T) {
	dates := DatesInRange(day(2026, time.January, 30), day(2026, time.February, 2))

	if len(dates) != 4 {
		t.Fatalf("expected 4 days, got %d", len(dates))
	}
	if !dates[3].Equal(day(2026, time.February, 2)) {
		t.Fatalf("expected 2026-02-02 last, got %v", dates[3])
	}
}

func TestDatesInRangeNormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC)

	dates := DatesInRange(start, end)

	if len(dates) != 2 {
		t.Fatalf("expected 2 days, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Hour() != 0 || d.Minute() != 0 {
			t.Fatalf("expected midnight, got %v", d)
		}
	}
}

func TestBlackoutLockedOnlyForSweepRows(t *testing.T) {
	if blackoutLocked(nil) {
		t.Fatal("a missing row must not be locked")
	}

	own := "picked up at gate 3"
	if blackoutLocked(&own) {
		t.Fatal("an employee note must not lock the day")
	}

	marker := BlackoutNote
	if !blackoutLocked(&marker) {
		t.Fatal("a sweep row must lock the day")
	}
}
