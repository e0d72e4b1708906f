package engine

import (
	"context"
	"fmt"
	"time"
)

// MaxFocusDuration bounds custom focus sessions.
const MaxFocusDuration = 99 * time.Minute

// FocusPresets are the one-tap session lengths.
var FocusPresets = []time.Duration{
	5 * time.Minute,
	15 * time.Minute,
	25 * time.Minute,
	45 * time.Minute,
	60 * time.Minute,
}

// FocusRewards are the XP amounts a finished session may claim.
var FocusRewards = []int{10, 20, 30, 50, 75, 100}

// DefaultFocusStat receives focus rewards unless another stat is chosen.
const DefaultFocusStat = StatFocus

// FocusTimer is a countdown that never drifts: the remaining time is always
// recomputed from the deadline rather than decremented per tick.
type FocusTimer struct {
	total           time.Duration
	running         bool
	deadline        time.Time
	pausedRemaining time.Duration
}

func NewFocusTimer(total time.Duration) (*FocusTimer, error) {
	t := &FocusTimer{}
	if err := t.Set(total); err != nil {
		return nil, err
	}
	return t, nil
}

// Set stops the timer and loads a new duration.
func (t *FocusTimer) Set(total time.Duration) error {
	if total <= 0 || total > MaxFocusDuration {
		return ValidationError{Field: "duration", Reason: "must be positive and at most 99m, got " + total.String()}
	}
	t.total = total
	t.running = false
	t.deadline = time.Time{}
	t.pausedRemaining = total
	return nil
}

func (t *FocusTimer) Total() time.Duration { return t.total }
func (t *FocusTimer) Running() bool        { return t.running }

// Start resumes from the paused remainder. Starting a finished timer does nothing.
func (t *FocusTimer) Start(now time.Time) {
	if t.running || t.pausedRemaining <= 0 {
		return
	}
	t.running = true
	t.deadline = now.Add(t.pausedRemaining)
}

func (t *FocusTimer) Pause(now time.Time) {
	if !t.running {
		return
	}
	t.pausedRemaining = t.Remaining(now)
	t.running = false
}

// Reset returns to the full duration, stopped.
func (t *FocusTimer) Reset() {
	t.running = false
	t.deadline = time.Time{}
	t.pausedRemaining = t.total
}

func (t *FocusTimer) Remaining(now time.Time) time.Duration {
	if !t.running {
		return t.pausedRemaining
	}
	left := t.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Tick advances a running timer; it reports true exactly once, on the tick
// where the countdown reaches zero.
func (t *FocusTimer) Tick(now time.Time) (finished bool) {
	if !t.running {
		return false
	}
	if t.Remaining(now) > 0 {
		return false
	}
	t.running = false
	t.pausedRemaining = 0
	return true
}

// Progress is the elapsed fraction, in [0,1].
func (t *FocusTimer) Progress(now time.Time) float64 {
	if t.total <= 0 {
		return 0
	}
	return 1 - float64(t.Remaining(now))/float64(t.total)
}

// FormatClock renders mm:ss.
func FormatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func validFocusReward(xp int) bool {
	for _, r := range FocusRewards {
		if r == xp {
			return true
		}
	}
	return false
}

// FocusFinished queues the reward prompt for a completed session.
func (s *Service) FocusFinished(total time.Duration) {
	s.notifier.Publish(Event{Kind: EventReward, Source: "focus " + FormatClock(total)}, s.opts.RewardDelay)
}

// RewardFocusSession grants a claimed focus reward to stat.
func (s *Service) RewardFocusSession(ctx context.Context, stat StatKey, xp int) (RewardResult, error) {
	if stat == "" {
		stat = DefaultFocusStat
	}
	if !validFocusReward(xp) {
		return RewardResult{}, ValidationError{Field: "xp", Reason: "must be one of 10, 20, 30, 50, 75, 100"}
	}
	return s.ApplyStat(ctx, stat, xp)
}
