package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

type CreateTaskInput struct {
	Text      string
	TimeFrame TimeFrame
	Category  StatKey
}

func newID() string {
	return uuid.NewString()
}

func (s *Service) Tasks() []storage.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Task, len(s.state.Todos))
	for i, t := range s.state.Todos {
		out[i] = cloneTask(t)
	}
	return out
}

// TasksByTimeFrame groups open tasks by time frame, preserving list order.
func (s *Service) TasksByTimeFrame() map[TimeFrame][]storage.Task {
	out := map[TimeFrame][]storage.Task{}
	for _, t := range s.Tasks() {
		tf := parseStoredTimeFrame(t.TimeFrame)
		out[tf] = append(out[tf], t)
	}
	return out
}

// CreateTask appends a task whose reward is fixed by its time frame.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (storage.Task, error) {
	text, err := normalizeText("text", in.Text)
	if err != nil {
		return storage.Task{}, err
	}
	tf := in.TimeFrame
	if tf == "" {
		tf = TimeFrameToday
	}
	if !tf.IsValid() {
		return storage.Task{}, ValidationError{Field: "timeFrame", Reason: "unknown time frame " + quote(string(tf))}
	}
	cat := in.Category
	if cat == "" {
		cat = StatDiscipline
	}
	if !cat.IsValid() {
		return storage.Task{}, ValidationError{Field: "category", Reason: "unknown stat " + quote(string(cat))}
	}

	t := storage.Task{
		ID:        newID(),
		Text:      text,
		XP:        tf.XP(),
		TimeFrame: string(tf),
		Category:  string(cat),
		Subtasks:  []storage.Subtask{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	todos := append(s.copyTodos(), t)
	if err := s.save(ctx, storage.Record{Key: storage.KeyTodos, Value: todos}); err != nil {
		return storage.Task{}, err
	}
	s.state.Todos = todos
	return cloneTask(t), nil
}

// CompleteTask grants the task's xp to its category and removes it.
func (s *Service) CompleteTask(ctx context.Context, id string) (RewardResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(id)
	if idx < 0 {
		return RewardResult{}, nil
	}
	todos := s.copyTodos()
	t := todos[idx]
	todos = append(todos[:idx], todos[idx+1:]...)

	stat := parseStoredStat(t.Category)
	p, change := reward(s.state.User, stat, t.XP)
	if err := s.save(ctx,
		storage.Record{Key: storage.KeyTodos, Value: todos},
		storage.Record{Key: storage.KeyUser, Value: p},
	); err != nil {
		return RewardResult{}, err
	}
	s.state.Todos = todos
	s.state.User = p
	s.log.Debug("task completed", zap.String("id", t.ID), zap.Int("xp", t.XP))
	s.notifier.Publish(Event{Kind: EventReward, XP: t.XP, Stat: stat, Source: SourceTask}, s.opts.LevelUpDelay)
	s.announce(change)
	return RewardResult{Applied: true, XPAwarded: t.XP, Stat: stat, Change: change}, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.mutateTasks(ctx, func(todos []storage.Task) ([]storage.Task, bool) {
		for i, t := range todos {
			if t.ID == id {
				return append(todos[:i], todos[i+1:]...), true
			}
		}
		return todos, false
	})
}

func (s *Service) EditTask(ctx context.Context, id, text string) (bool, error) {
	clean, err := normalizeText("text", text)
	if err != nil {
		return false, err
	}
	return s.mutateTask(ctx, id, func(t *storage.Task) bool {
		t.Text = clean
		return true
	})
}

// SetTaskNotes replaces a task's free-text notes. Empty notes are allowed.
func (s *Service) SetTaskNotes(ctx context.Context, id, notes string) (bool, error) {
	return s.mutateTask(ctx, id, func(t *storage.Task) bool {
		t.Notes = notes
		return true
	})
}

func (s *Service) AddSubtask(ctx context.Context, taskID, text string) (storage.Subtask, error) {
	clean, err := normalizeText("text", text)
	if err != nil {
		return storage.Subtask{}, err
	}

	sub := storage.Subtask{ID: newID(), Text: clean}
	var rejected error
	ok, err := s.mutateTask(ctx, taskID, func(t *storage.Task) bool {
		if !parseStoredTimeFrame(t.TimeFrame).AllowsSubtasks() {
			rejected = ValidationError{Field: "timeFrame", Reason: "subtasks need a this-week or this-month task"}
			return false
		}
		t.Subtasks = append(t.Subtasks, sub)
		return true
	})
	switch {
	case err != nil:
		return storage.Subtask{}, err
	case rejected != nil:
		return storage.Subtask{}, rejected
	case !ok:
		return storage.Subtask{}, nil
	}
	return sub, nil
}

// ToggleSubtask flips a subtask. Completing grants SubtaskXP to the parent's
// category; un-completing grants and revokes nothing.
func (s *Service) ToggleSubtask(ctx context.Context, taskID, subID string) (RewardResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(taskID)
	if idx < 0 {
		return RewardResult{}, nil
	}
	todos := s.copyTodos()
	t := &todos[idx]
	si := -1
	for i, sub := range t.Subtasks {
		if sub.ID == subID {
			si = i
			break
		}
	}
	if si < 0 {
		return RewardResult{}, nil
	}
	t.Subtasks[si].Completed = !t.Subtasks[si].Completed

	if !t.Subtasks[si].Completed {
		if err := s.save(ctx, storage.Record{Key: storage.KeyTodos, Value: todos}); err != nil {
			return RewardResult{}, err
		}
		s.state.Todos = todos
		return RewardResult{Applied: true}, nil
	}

	stat := parseStoredStat(t.Category)
	p, change := reward(s.state.User, stat, SubtaskXP)
	if err := s.save(ctx,
		storage.Record{Key: storage.KeyTodos, Value: todos},
		storage.Record{Key: storage.KeyUser, Value: p},
	); err != nil {
		return RewardResult{}, err
	}
	s.state.Todos = todos
	s.state.User = p
	s.announce(change)
	return RewardResult{Applied: true, XPAwarded: SubtaskXP, Stat: stat, Change: change}, nil
}

func (s *Service) DeleteSubtask(ctx context.Context, taskID, subID string) (bool, error) {
	return s.mutateTask(ctx, taskID, func(t *storage.Task) bool {
		for i, sub := range t.Subtasks {
			if sub.ID == subID {
				t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
				return true
			}
		}
		return false
	})
}

// mutateTask edits one task in a copy of the list and saves it when fn
// reports a change.
func (s *Service) mutateTask(ctx context.Context, id string, fn func(*storage.Task) bool) (bool, error) {
	return s.mutateTasks(ctx, func(todos []storage.Task) ([]storage.Task, bool) {
		for i := range todos {
			if todos[i].ID == id {
				return todos, fn(&todos[i])
			}
		}
		return todos, false
	})
}

func (s *Service) mutateTasks(ctx context.Context, fn func([]storage.Task) ([]storage.Task, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, changed := fn(s.copyTodos())
	if !changed {
		return false, nil
	}
	if err := s.save(ctx, storage.Record{Key: storage.KeyTodos, Value: todos}); err != nil {
		return false, err
	}
	s.state.Todos = todos
	return true, nil
}

func (s *Service) taskIndex(id string) int {
	for i, t := range s.state.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) copyTodos() []storage.Task {
	out := make([]storage.Task, len(s.state.Todos))
	for i, t := range s.state.Todos {
		out[i] = cloneTask(t)
	}
	return out
}
