package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusTimerBounds(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Minute, MaxFocusDuration + time.Second} {
		if _, err := NewFocusTimer(d); err == nil {
			t.Fatalf("NewFocusTimer(%v) accepted", d)
		}
	}
	if _, err := NewFocusTimer(MaxFocusDuration); err != nil {
		t.Fatalf("NewFocusTimer(max): %v", err)
	}
}

func TestFocusTimerCountdown(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ft, err := NewFocusTimer(25 * time.Minute)
	if err != nil {
		t.Fatalf("NewFocusTimer: %v", err)
	}

	ft.Start(t0)
	if got := ft.Remaining(t0.Add(10 * time.Second)); got != 25*time.Minute-10*time.Second {
		t.Fatalf("Remaining=%v", got)
	}

	paused := t0.Add(5 * time.Minute)
	ft.Pause(paused)
	if ft.Running() {
		t.Fatalf("still running after Pause")
	}
	if got := ft.Remaining(paused.Add(time.Hour)); got != 20*time.Minute {
		t.Fatalf("paused Remaining=%v, want 20m", got)
	}

	resumed := paused.Add(time.Hour)
	ft.Start(resumed)
	if ft.Tick(resumed.Add(19 * time.Minute)) {
		t.Fatalf("finished early")
	}
	assert.InDelta(t, 0.6, ft.Progress(resumed.Add(10*time.Minute)), 1e-9)
	end := resumed.Add(20 * time.Minute)
	if !ft.Tick(end) {
		t.Fatalf("not finished at zero")
	}
	if ft.Tick(end.Add(time.Second)) {
		t.Fatalf("finished twice")
	}
	ft.Start(end)
	if ft.Running() {
		t.Fatalf("finished timer restarted")
	}

	ft.Reset()
	if got := ft.Remaining(end); got != 25*time.Minute {
		t.Fatalf("Remaining after Reset=%v", got)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[time.Duration]string{
		25 * time.Minute:        "25:00",
		65 * time.Second:        "01:05",
		MaxFocusDuration:        "99:00",
		-time.Second:            "00:00",
		1500 * time.Millisecond: "00:02",
	}
	for d, want := range cases {
		if got := FormatClock(d); got != want {
			t.Fatalf("FormatClock(%v)=%q, want %q", d, got, want)
		}
	}
}

func TestRewardFocusSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.RewardFocusSession(ctx, "", 25)
	requireValidation(t, err, "xp")

	res, err := svc.RewardFocusSession(ctx, "", 50)
	require.NoError(t, err)
	assert.Equal(t, StatFocus, res.Stat)
	assert.Equal(t, 50, svc.Player().Stats[string(StatFocus)])

	res, err = svc.RewardFocusSession(ctx, StatCreativity, 100)
	require.NoError(t, err)
	assert.True(t, res.Change.LevelUp())
}

func TestFocusFinishedQueuesPrompt(t *testing.T) {
	fc := NewFakeClock(day(2026, 3, 10))
	n := NewNotifier(fc, 1)
	t.Cleanup(n.Close)
	svc := openTestService(t, testDBPath(t), Options{Clock: fc, Notifier: n, RewardDelay: time.Second})

	svc.FocusFinished(25 * time.Minute)
	fc.Advance(time.Second)
	ev := <-n.Events()
	assert.Equal(t, EventReward, ev.Kind)
	assert.Equal(t, "focus 25:00", ev.Source)
}
