package engine

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func history(keys ...string) map[string]bool {
	h := make(map[string]bool, len(keys))
	for _, k := range keys {
		h[k] = true
	}
	return h
}

func TestCurrentStreak(t *testing.T) {
	today := day(2026, 3, 10)
	cases := []struct {
		name string
		hist map[string]bool
		want int
	}{
		{"empty", history(), 0},
		{"today only", history("2026-03-10"), 0},
		{"today and yesterday", history("2026-03-10", "2026-03-09"), 1},
		{"alive from yesterday", history("2026-03-09", "2026-03-08", "2026-03-07"), 2},
		{"broken", history("2026-03-08", "2026-03-07"), 0},
		{"gap stops walk", history("2026-03-10", "2026-03-09", "2026-03-07"), 1},
	}
	for _, tc := range cases {
		if got := CurrentStreak(tc.hist, today); got != tc.want {
			t.Fatalf("%s: CurrentStreak=%d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBestStreak(t *testing.T) {
	if got := BestStreak(history()); got != 0 {
		t.Fatalf("empty: BestStreak=%d, want 0", got)
	}
	h := history("2026-03-01", "2026-03-02", "2026-03-03", "2026-03-07", "garbage")
	if got := BestStreak(h); got != 3 {
		t.Fatalf("BestStreak=%d, want 3", got)
	}
	if got := BestStreak(history("2026-02-28", "2026-03-01")); got != 2 {
		t.Fatalf("across month: BestStreak=%d, want 2", got)
	}
}

func TestTotalCompletionsIgnoresFalse(t *testing.T) {
	h := history("2026-03-01", "2026-03-02")
	h["2026-03-03"] = false
	if got := TotalCompletions(h); got != 2 {
		t.Fatalf("TotalCompletions=%d, want 2", got)
	}
}

func TestParseDateKey(t *testing.T) {
	got, err := ParseDateKey("2026-03-10", time.UTC)
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDateKey=%v", got)
	}

	_, err = ParseDateKey("03/10/2026", time.UTC)
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "date" {
		t.Fatalf("want date ValidationError, got %v", err)
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, ny)
	if got := DateKey(addDays(start, 1)); got != "2026-03-09" {
		t.Fatalf("addDays over DST = %s, want 2026-03-09", got)
	}
	if got := NextMidnight(time.Date(2026, 11, 1, 10, 0, 0, 0, ny)); DateKey(got) != "2026-11-02" || got.Hour() != 0 {
		t.Fatalf("NextMidnight over DST = %v", got)
	}
}
