package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

const (
	weeklySeriesLen  = 8
	monthlySeriesLen = 6
	monthLayout      = "2006-01"
)

// Bucket maps a completion date to an aggregation key.
type Bucket func(time.Time) string

func DayBucket(t time.Time) string   { return DateKey(t) }
func WeekBucket(t time.Time) string  { return DateKey(MondayOf(t)) }
func MonthBucket(t time.Time) string { return t.Format(monthLayout) }

// Aggregate counts completions across all habits per bucket key. History
// keys that are not valid dates are skipped.
func Aggregate(habits []storage.Habit, bucket Bucket) map[string]int {
	counts := map[string]int{}
	for _, h := range habits {
		for key, ok := range h.History {
			if !ok {
				continue
			}
			d, err := ParseDateKey(key, time.Local)
			if err != nil {
				continue
			}
			counts[bucket(d)]++
		}
	}
	return counts
}

// BestBucket returns the key with the highest count, ignoring excluded keys.
// Ties go to the lexically earliest key. ok is false when nothing remains.
func BestBucket(counts map[string]int, exclude ...string) (key string, count int, ok bool) {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !ok || counts[k] > count {
			key, count, ok = k, counts[k], true
		}
	}
	return key, count, ok
}

// SeriesPoint is one labelled bar of a report. Best is meaningful only when
// HasBest is set.
type SeriesPoint struct {
	Label   string
	Current int
	Best    int
	HasBest bool
}

var dayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DailySeries compares each day of today's week with the same weekday of the
// best other week.
func DailySeries(habits []storage.Habit, today time.Time) []SeriesPoint {
	days := Aggregate(habits, DayBucket)
	weeks := Aggregate(habits, WeekBucket)
	bestWeek, _, hasBest := BestBucket(weeks, WeekBucket(today))

	var bestMonday time.Time
	if hasBest {
		bestMonday, _ = ParseDateKey(bestWeek, today.Location())
	}

	out := make([]SeriesPoint, 7)
	for i, d := range WeekDays(today) {
		p := SeriesPoint{Label: dayLabels[i], Current: days[DateKey(d)], HasBest: hasBest}
		if hasBest {
			p.Best = days[DateKey(addDays(bestMonday, i))]
		}
		out[i] = p
	}
	return out
}

// WeeklySeries covers the last eight weeks, oldest first, against the best
// week total ever recorded.
func WeeklySeries(habits []storage.Habit, today time.Time) []SeriesPoint {
	weeks := Aggregate(habits, WeekBucket)
	_, best, hasBest := BestBucket(weeks)

	out := make([]SeriesPoint, weeklySeriesLen)
	for i := range out {
		d := addDays(today, -7*(weeklySeriesLen-1-i))
		out[i] = SeriesPoint{
			Label:   "W" + strconv.Itoa(i+1),
			Current: weeks[WeekBucket(d)],
			Best:    best,
			HasBest: hasBest,
		}
	}
	return out
}

// MonthlySeries covers the last six months, oldest first, against the best
// month total ever recorded.
func MonthlySeries(habits []storage.Habit, today time.Time) []SeriesPoint {
	months := Aggregate(habits, MonthBucket)
	_, best, hasBest := BestBucket(months)

	out := make([]SeriesPoint, monthlySeriesLen)
	for i := range out {
		first := time.Date(today.Year(), today.Month()-time.Month(monthlySeriesLen-1-i), 1, 0, 0, 0, 0, today.Location())
		out[i] = SeriesPoint{
			Label:   first.Format("Jan"),
			Current: months[MonthBucket(first)],
			Best:    best,
			HasBest: hasBest,
		}
	}
	return out
}

type ReportView string

const (
	ReportDaily   ReportView = "daily"
	ReportWeekly  ReportView = "weekly"
	ReportMonthly ReportView = "monthly"
)

func ParseReportView(input string) (ReportView, error) {
	v := ReportView(strings.ToLower(strings.TrimSpace(input)))
	switch v {
	case "":
		return ReportDaily, nil
	case ReportDaily, ReportWeekly, ReportMonthly:
		return v, nil
	default:
		return "", ValidationError{Field: "view", Reason: "want daily, weekly or monthly, got " + quote(input)}
	}
}

// BestLabel names the reference series of a view.
func (v ReportView) BestLabel() string {
	switch v {
	case ReportWeekly:
		return "Best Week Total"
	case ReportMonthly:
		return "Best Month Total"
	default:
		return "Best Week"
	}
}

// Report builds the series for a view from the current habits.
func (s *Service) Report(view ReportView) []SeriesPoint {
	habits := s.Habits()
	now := s.clock.Now()
	switch view {
	case ReportWeekly:
		return WeeklySeries(habits, now)
	case ReportMonthly:
		return MonthlySeries(habits, now)
	default:
		return DailySeries(habits, now)
	}
}
