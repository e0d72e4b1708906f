package engine

import (
	"context"
	"time"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

// HabitStats summarizes one habit's history.
type HabitStats struct {
	Current int
	Best    int
	Total   int
}

func StatsFor(h storage.Habit, today time.Time) HabitStats {
	return HabitStats{
		Current: CurrentStreak(h.History, today),
		Best:    BestStreak(h.History),
		Total:   TotalCompletions(h.History),
	}
}

// WeekDays returns Monday through Sunday of the week containing t.
func WeekDays(t time.Time) []time.Time {
	mon := MondayOf(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = addDays(mon, i)
	}
	return days
}

func (s *Service) Habits() []storage.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Habit, len(s.state.Habits))
	for i, h := range s.state.Habits {
		out[i] = cloneHabit(h)
	}
	return out
}

func (s *Service) CreateHabit(ctx context.Context, name string, attr StatKey) (storage.Habit, error) {
	n, err := normalizeText("name", name)
	if err != nil {
		return storage.Habit{}, err
	}
	if attr == "" {
		attr = StatDiscipline
	}
	if !attr.IsValid() {
		return storage.Habit{}, ValidationError{Field: "attribute", Reason: "unknown stat " + quote(string(attr))}
	}

	h := storage.Habit{ID: newID(), Name: n, Attribute: string(attr), History: map[string]bool{}}

	s.mu.Lock()
	defer s.mu.Unlock()
	habits := append(s.copyHabits(), h)
	if err := s.save(ctx, storage.Record{Key: storage.KeyHabits, Value: habits}); err != nil {
		return storage.Habit{}, err
	}
	s.state.Habits = habits
	return cloneHabit(h), nil
}

// ToggleHabitDate checks or unchecks one date. Checking grants HabitToggleXP
// to the habit's attribute and unchecking takes the same amount back.
func (s *Service) ToggleHabitDate(ctx context.Context, id, dateKey string) (RewardResult, error) {
	if _, err := ParseDateKey(dateKey, time.Local); err != nil {
		return RewardResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.copyHabits()
	idx := -1
	for i, h := range habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RewardResult{}, nil
	}

	h := &habits[idx]
	amount := HabitToggleXP
	if h.History[dateKey] {
		delete(h.History, dateKey)
		amount = -HabitToggleXP
	} else {
		h.History[dateKey] = true
	}

	stat := parseStoredStat(h.Attribute)
	p, change := reward(s.state.User, stat, amount)
	if err := s.save(ctx,
		storage.Record{Key: storage.KeyHabits, Value: habits},
		storage.Record{Key: storage.KeyUser, Value: p},
	); err != nil {
		return RewardResult{}, err
	}
	s.state.Habits = habits
	s.state.User = p
	s.announce(change)
	return RewardResult{Applied: true, XPAwarded: amount, Stat: stat, Change: change}, nil
}

func (s *Service) DeleteHabit(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.copyHabits()
	for i, h := range habits {
		if h.ID != id {
			continue
		}
		habits = append(habits[:i], habits[i+1:]...)
		if err := s.save(ctx, storage.Record{Key: storage.KeyHabits, Value: habits}); err != nil {
			return false, err
		}
		s.state.Habits = habits
		return true, nil
	}
	return false, nil
}

func (s *Service) copyHabits() []storage.Habit {
	out := make([]storage.Habit, len(s.state.Habits))
	for i, h := range s.state.Habits {
		out[i] = cloneHabit(h)
	}
	return out
}
