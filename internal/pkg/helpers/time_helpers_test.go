package helpers

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	at := time.Date(2026, 3, 15, 18, 42, 7, 0, loc)
	start, end := DayBounds(at)

	wantStart := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	// Midnight itself belongs to the starting day
	start2, _ := DayBounds(wantStart)
	if !start2.Equal(wantStart) {
		t.Errorf("midnight start = %v, want %v", start2, wantStart)
	}
}

func TestLocalDay(t *testing.T) {
	at := time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC)
	day := LocalDay(at)
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Fatalf("got %v, want %v", day, want)
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-02", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"2026", "2026-13", "02-2026", "February"} {
		if _, err := ParseMonth(bad, time.UTC); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	at := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	start, end := MonthBounds(at)
	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %v", end)
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 10, 0, 10},
		{2, 0, 10, 10},
		{2, 500, 10, 10},
	}
	for _, tc := range cases {
		offset, limit := CalculateOffsetLimit(tc.page, tc.size)
		if offset != tc.wantOffset || limit != tc.wantLimit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, offset, limit, tc.wantOffset, tc.wantLimit)
		}
	}
}
