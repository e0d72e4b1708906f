package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

// reportHabits spans three weeks around Tue 2026-03-10.
func reportHabits() []storage.Habit {
	return []storage.Habit{
		{ID: "a", History: history("2026-03-09", "2026-03-10", "2026-03-02", "2026-03-03", "bad-key")},
		{ID: "b", History: history("2026-03-04", "2026-02-23")},
	}
}

func TestAggregate(t *testing.T) {
	days := Aggregate(reportHabits(), DayBucket)
	assert.Equal(t, 1, days["2026-03-02"])
	assert.Len(t, days, 6)

	weeks := Aggregate(reportHabits(), WeekBucket)
	assert.Equal(t, map[string]int{"2026-03-09": 2, "2026-03-02": 3, "2026-02-23": 1}, weeks)

	months := Aggregate(reportHabits(), MonthBucket)
	assert.Equal(t, map[string]int{"2026-03": 5, "2026-02": 1}, months)
}

func TestBestBucket(t *testing.T) {
	counts := map[string]int{"2026-03-02": 3, "2026-02-23": 3, "2026-03-09": 5}

	key, n, ok := BestBucket(counts)
	require.True(t, ok)
	assert.Equal(t, "2026-03-09", key)
	assert.Equal(t, 5, n)

	key, _, _ = BestBucket(counts, "2026-03-09")
	assert.Equal(t, "2026-02-23", key, "ties go to the earliest key")

	_, _, ok = BestBucket(map[string]int{"x": 1}, "x")
	assert.False(t, ok)
}

func TestDailySeries(t *testing.T) {
	today := day(2026, 3, 10)
	got := DailySeries(reportHabits(), today)
	require.Len(t, got, 7)

	assert.Equal(t, SeriesPoint{Label: "Mon", Current: 1, Best: 1, HasBest: true}, got[0])
	assert.Equal(t, SeriesPoint{Label: "Tue", Current: 1, Best: 1, HasBest: true}, got[1])
	assert.Equal(t, SeriesPoint{Label: "Wed", Current: 0, Best: 1, HasBest: true}, got[2])
	assert.Equal(t, SeriesPoint{Label: "Sun", Current: 0, Best: 0, HasBest: true}, got[6])

	only := []storage.Habit{{ID: "c", History: history("2026-03-10")}}
	for _, p := range DailySeries(only, today) {
		assert.False(t, p.HasBest, p.Label)
	}
}

func TestWeeklyAndMonthlySeries(t *testing.T) {
	today := day(2026, 3, 10)

	weeks := WeeklySeries(reportHabits(), today)
	require.Len(t, weeks, 8)
	assert.Equal(t, "W1", weeks[0].Label)
	assert.Equal(t, "W8", weeks[7].Label)
	assert.Equal(t, 2, weeks[7].Current)
	assert.Equal(t, 3, weeks[6].Current)
	assert.Equal(t, 1, weeks[5].Current)
	assert.Equal(t, 3, weeks[0].Best)

	months := MonthlySeries(reportHabits(), today)
	require.Len(t, months, 6)
	assert.Equal(t, "Oct", months[0].Label)
	assert.Equal(t, "Mar", months[5].Label)
	assert.Equal(t, 5, months[5].Current)
	assert.Equal(t, 1, months[4].Current)
	assert.Equal(t, 5, months[0].Best)

	empty := WeeklySeries(nil, today)
	assert.False(t, empty[0].HasBest)
}

func TestParseReportView(t *testing.T) {
	v, err := ParseReportView("")
	require.NoError(t, err)
	assert.Equal(t, ReportDaily, v)
	v, err = ParseReportView(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, ReportMonthly, v)
	assert.Equal(t, "Best Month Total", v.BestLabel())

	_, err = ParseReportView("yearly")
	requireValidation(t, err, "view")
}

func TestServiceReport(t *testing.T) {
	svc, fc := newTestService(t)
	h, err := svc.CreateHabit(context.Background(), "Run", StatHealth)
	require.NoError(t, err)
	_, err = svc.ToggleHabitDate(context.Background(), h.ID, DateKey(fc.Now()))
	require.NoError(t, err)

	series := svc.Report(ReportDaily)
	require.Len(t, series, 7)
	assert.Equal(t, 1, series[1].Current)
	assert.Len(t, svc.Report(ReportWeekly), 8)
}
