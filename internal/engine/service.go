package engine

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

const (
	DefaultPlayerName   = "Player 1"
	DefaultLevelUpDelay = 300 * time.Millisecond
	DefaultRewardDelay  = 600 * time.Millisecond
)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Clock    Clock
	Logger   *zap.Logger
	Notifier *Notifier
	Pool     []ChallengeTemplate

	DefaultName  string
	LevelUpDelay time.Duration
	RewardDelay  time.Duration
}

// Service owns the whole state tree. Every mutation replaces one or more
// top-level records and saves them before the in-memory copy is swapped.
type Service struct {
	db      *sql.DB
	records *storage.RecordRepo

	clock    Clock
	log      *zap.Logger
	notifier *Notifier
	pool     []ChallengeTemplate
	opts     Options

	mu      sync.Mutex
	state   storage.State
	startup RolloverResult
}

// RewardResult reports the effect of one XP-granting operation. Applied is
// false when the referenced entity did not exist or the call had no effect.
type RewardResult struct {
	Applied   bool
	XPAwarded int
	Stat      StatKey
	Change    LevelChange
}

func NewService(ctx context.Context, db *sql.DB, opts Options) (*Service, error) {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Pool == nil {
		opts.Pool = DefaultPool()
	}
	if strings.TrimSpace(opts.DefaultName) == "" {
		opts.DefaultName = DefaultPlayerName
	}
	if opts.LevelUpDelay <= 0 {
		opts.LevelUpDelay = DefaultLevelUpDelay
	}
	if opts.RewardDelay <= 0 {
		opts.RewardDelay = DefaultRewardDelay
	}

	s := &Service{
		db:       db,
		records:  storage.NewRecordRepo(db),
		clock:    opts.Clock,
		log:      opts.Logger,
		notifier: opts.Notifier,
		pool:     opts.Pool,
		opts:     opts,
	}

	st, err := s.records.Load(ctx, s.defaults(), s.log)
	if err != nil {
		return nil, err
	}
	st.User = normalizePlayer(st.User, opts.DefaultName)
	st.Challenges = MergeChallenges(s.pool, st.Challenges)
	s.state = st

	res, err := s.Rollover(ctx)
	if err != nil {
		return nil, err
	}
	s.startup = res
	return s, nil
}

func (s *Service) defaults() storage.State {
	return storage.State{
		Todos:  DefaultTasks(),
		Habits: []storage.Habit{},
		Logs:   map[string]storage.JournalEntry{},
		User:   newPlayer(s.opts.DefaultName),
	}
}

// DefaultTasks is the starter list used when no todos record exists.
func DefaultTasks() []storage.Task {
	mk := func(id, text string, cat StatKey) storage.Task {
		return storage.Task{
			ID:        id,
			Text:      text,
			XP:        TimeFrameToday.XP(),
			TimeFrame: string(TimeFrameToday),
			Category:  string(cat),
			Subtasks:  []storage.Subtask{},
		}
	}
	return []storage.Task{
		mk("default-1", "No phone for the next hour", StatMentalHealth),
		mk("default-2", "Sleep before 10pm", StatHealth),
		mk("default-3", "Clean your desk", StatDiscipline),
	}
}

// StartupRollover is the result of the rollover check NewService ran.
func (s *Service) StartupRollover() RolloverResult {
	return s.startup
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() storage.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Now is the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

func (s *Service) Pool() []ChallengeTemplate {
	out := make([]ChallengeTemplate, len(s.pool))
	copy(out, s.pool)
	return out
}

// save persists the given records. Callers hold s.mu and only swap the
// in-memory state once save succeeds.
func (s *Service) save(ctx context.Context, recs ...storage.Record) error {
	return s.records.Save(ctx, recs...)
}

// announce publishes the level-up notification for a committed change.
func (s *Service) announce(change LevelChange) {
	if !change.LevelUp() {
		return
	}
	s.log.Info("level up", zap.Int("from", change.LevelBefore), zap.Int("to", change.LevelAfter))
	s.notifier.Publish(Event{Kind: EventLevelUp, Level: change.LevelAfter, XP: change.XPAfter}, s.opts.LevelUpDelay)
}

func normalizeText(field, text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", ValidationError{Field: field, Reason: "is required"}
	}
	return t, nil
}

func cloneState(st storage.State) storage.State {
	out := storage.State{
		User:     clonePlayer(st.User),
		LastDate: st.LastDate,
	}
	out.Todos = make([]storage.Task, len(st.Todos))
	for i, t := range st.Todos {
		out.Todos[i] = cloneTask(t)
	}
	out.Habits = make([]storage.Habit, len(st.Habits))
	for i, h := range st.Habits {
		out.Habits[i] = cloneHabit(h)
	}
	out.Challenges = make([]storage.Challenge, len(st.Challenges))
	for i, c := range st.Challenges {
		out.Challenges[i] = cloneChallenge(c)
	}
	out.Logs = make(map[string]storage.JournalEntry, len(st.Logs))
	for k, e := range st.Logs {
		out.Logs[k] = cloneEntry(e)
	}
	return out
}

func cloneTask(t storage.Task) storage.Task {
	subs := make([]storage.Subtask, len(t.Subtasks))
	copy(subs, t.Subtasks)
	t.Subtasks = subs
	return t
}

func cloneHabit(h storage.Habit) storage.Habit {
	hist := make(map[string]bool, len(h.History))
	for k, v := range h.History {
		hist[k] = v
	}
	h.History = hist
	return h
}

func cloneChallenge(c storage.Challenge) storage.Challenge {
	if c.StartedAt != nil {
		at := *c.StartedAt
		c.StartedAt = &at
	}
	return c
}

func cloneEntry(e storage.JournalEntry) storage.JournalEntry {
	emo := make([]string, len(e.Emotions))
	copy(emo, e.Emotions)
	e.Emotions = emo
	if e.Video != nil {
		v := *e.Video
		e.Video = &v
	}
	return e
}
