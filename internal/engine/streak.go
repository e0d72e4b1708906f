package engine

import (
	"sort"
	"time"
)

// DateLayout is the persisted calendar-day format.
const DateLayout = "2006-01-02"

// maxStreakWalk bounds the backwards walk of CurrentStreak.
const maxStreakWalk = 365

// DateKey renders t's local calendar day.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, ValidationError{Field: "date", Reason: "want YYYY-MM-DD, got " + quote(key)}
	}
	return t, nil
}

// addDays moves by calendar days, not 24h periods, so DST days count once.
func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// CurrentStreak returns the displayed streak for a habit history.
//
// The streak is alive when today or yesterday is checked. Consecutive checked
// days are counted backwards from the most recent of the two, and the result
// is one less than that count: one checked day shows 0, two in a row show 1.
func CurrentStreak(history map[string]bool, today time.Time) int {
	hasToday := history[DateKey(today)]
	hasYesterday := history[DateKey(addDays(today, -1))]
	if !hasToday && !hasYesterday {
		return 0
	}

	start := 0
	if !hasToday {
		start = 1
	}
	consecutive := 0
	for i := start; i < maxStreakWalk; i++ {
		if !history[DateKey(addDays(today, -i))] {
			break
		}
		consecutive++
	}
	if consecutive-1 < 0 {
		return 0
	}
	return consecutive - 1
}

// BestStreak returns the longest run of consecutive checked days. Unparseable
// keys are ignored.
func BestStreak(history map[string]bool) int {
	days := sortedDays(history)
	if len(days) == 0 {
		return 0
	}
	best, cur := 1, 1
	for i := 1; i < len(days); i++ {
		if DateKey(addDays(days[i-1], 1)) == DateKey(days[i]) {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 1
		}
	}
	return best
}

// TotalCompletions counts checked days.
func TotalCompletions(history map[string]bool) int {
	n := 0
	for _, ok := range history {
		if ok {
			n++
		}
	}
	return n
}

func sortedDays(history map[string]bool) []time.Time {
	keys := make([]string, 0, len(history))
	for k, ok := range history {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	days := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		t, err := ParseDateKey(k, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	return days
}
