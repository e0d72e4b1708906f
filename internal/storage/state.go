package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Load reads every record key independently. A missing or unparseable record
// falls back to the matching field of defaults and is logged; only storage I/O
// errors are returned.
func (r *RecordRepo) Load(ctx context.Context, defaults State, log *zap.Logger) (State, error) {
	if log == nil {
		log = zap.NewNop()
	}
	out := defaults

	for _, key := range AllKeys {
		raw, ok, err := r.Get(ctx, key)
		if err != nil {
			return State{}, err
		}
		if !ok {
			log.Debug("record absent, using default", zap.String("key", key))
			continue
		}

		var decodeErr error
		switch key {
		case KeyTodos:
			var v []Task
			if decodeErr = json.Unmarshal(raw, &v); decodeErr == nil {
				out.Todos = v
			}
		case KeyHabits:
			var v []Habit
			if decodeErr = json.Unmarshal(raw, &v); decodeErr == nil {
				out.Habits = v
			}
		case KeyLogs:
			var v map[string]JournalEntry
			if decodeErr = json.Unmarshal(raw, &v); decodeErr == nil {
				out.Logs = v
			}
		case KeyChallenges:
			var v []Challenge
			if decodeErr = json.Unmarshal(raw, &v); decodeErr == nil {
				out.Challenges = v
			}
		case KeyUser:
			var v Player
			if decodeErr = json.Unmarshal(raw, &v); decodeErr == nil {
				out.User = v
			}
		case KeyLastDate:
			var v string
			if decodeErr = json.Unmarshal(raw, &v); decodeErr == nil {
				out.LastDate = v
			}
		}
		if decodeErr != nil {
			log.Warn("corrupt record, using default", zap.String("key", key), zap.Error(decodeErr))
		}
	}

	if out.Logs == nil {
		out.Logs = map[string]JournalEntry{}
	}
	return out, nil
}
