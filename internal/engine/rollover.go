package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

// RolloverResult describes one rollover check.
type RolloverResult struct {
	Today string
	// Recorded is true when lastDate was written.
	Recorded bool
	// Promoted counts tomorrow tasks moved to today.
	Promoted int
}

// Rollover promotes tomorrow tasks when the calendar day has changed since
// lastDate. It returns the new task list and whether lastDate must be
// rewritten. The input slice is not modified.
//
// An empty lastDate is a first run: only the date is recorded.
func Rollover(tasks []storage.Task, lastDate, today string) (out []storage.Task, promoted int, record bool) {
	out = make([]storage.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	switch {
	case lastDate == "":
		return out, 0, true
	case lastDate == today:
		return out, 0, false
	}
	for i := range out {
		if out[i].TimeFrame == string(TimeFrameTomorrow) {
			out[i].TimeFrame = string(TimeFrameToday)
			out[i].XP = TimeFrameToday.XP()
			promoted++
		}
	}
	return out, promoted, true
}

// Rollover runs the rollover check against the service clock and persists
// any change.
func (s *Service) Rollover(ctx context.Context) (RolloverResult, error) {
	today := DateKey(s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	todos, promoted, record := Rollover(s.state.Todos, s.state.LastDate, today)
	res := RolloverResult{Today: today, Recorded: record, Promoted: promoted}
	if !record {
		return res, nil
	}

	recs := []storage.Record{{Key: storage.KeyLastDate, Value: today}}
	if promoted > 0 {
		recs = append(recs, storage.Record{Key: storage.KeyTodos, Value: todos})
	}
	if err := s.save(ctx, recs...); err != nil {
		return RolloverResult{}, err
	}
	s.state.Todos = todos
	s.state.LastDate = today
	s.log.Info("rollover", zap.String("today", today), zap.Int("promoted", promoted))
	return res, nil
}

// NextMidnight returns the start of the local day after t.
func NextMidnight(t time.Time) time.Time {
	return addDays(t, 1)
}

// RolloverScheduler runs Service.Rollover at every local midnight. Each run
// re-arms a fresh one-shot timer for the following midnight.
type RolloverScheduler struct {
	svc   *Service
	clock Clock
	log   *zap.Logger

	// OnRoll, when set, is called after every scheduled rollover.
	OnRoll func(RolloverResult, error)

	mu      sync.Mutex
	timer   Timer
	stopped bool
	running sync.WaitGroup
}

func NewRolloverScheduler(svc *Service) *RolloverScheduler {
	return &RolloverScheduler{svc: svc, clock: svc.clock, log: svc.log}
}

// Start arms the first timer. Calling Start after Stop does nothing.
func (r *RolloverScheduler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.timer != nil {
		return
	}
	r.armLocked()
}

func (r *RolloverScheduler) armLocked() {
	now := r.clock.Now()
	delay := NextMidnight(now).Sub(now)
	r.log.Debug("rollover armed", zap.Duration("in", delay))
	r.timer = r.clock.AfterFunc(delay, r.fire)
}

func (r *RolloverScheduler) fire() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.running.Add(1)
	r.mu.Unlock()
	defer r.running.Done()

	res, err := r.svc.Rollover(context.Background())
	if err != nil {
		r.log.Error("scheduled rollover failed", zap.Error(err))
	}
	if cb := r.OnRoll; cb != nil {
		cb(res, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stopped {
		r.armLocked()
	}
}

// Stop cancels the pending timer and waits for an in-flight rollover. After
// Stop returns no further rollover runs. Stop must not be called from OnRoll.
func (r *RolloverScheduler) Stop() {
	r.mu.Lock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()
	r.running.Wait()
}
