package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

// JournalSlots is the number of proud/improve lines per entry.
const JournalSlots = 3

type Emotion struct {
	ID    string
	Label string
	Emoji string
}

var emotions = []Emotion{
	{ID: "happy", Label: "Happy", Emoji: "😊"},
	{ID: "proud", Label: "Proud", Emoji: "🦁"},
	{ID: "grateful", Label: "Grateful", Emoji: "🙏"},
	{ID: "calm", Label: "Calm", Emoji: "🌊"},
	{ID: "focused", Label: "Focused", Emoji: "🎯"},
	{ID: "motivated", Label: "Motivated", Emoji: "🔥"},
	{ID: "confident", Label: "Confident", Emoji: "💪"},
	{ID: "creative", Label: "Creative", Emoji: "✨"},
	{ID: "tired", Label: "Tired", Emoji: "😴"},
	{ID: "stressed", Label: "Stressed", Emoji: "😤"},
	{ID: "anxious", Label: "Anxious", Emoji: "😰"},
	{ID: "frustrated", Label: "Frustrated", Emoji: "😠"},
	{ID: "sad", Label: "Sad", Emoji: "😔"},
	{ID: "overwhelmed", Label: "Overwhelmed", Emoji: "🌀"},
	{ID: "bored", Label: "Bored", Emoji: "😑"},
	{ID: "excited", Label: "Excited", Emoji: "🚀"},
}

// Emotions lists the selectable emotions in display order.
func Emotions() []Emotion {
	out := make([]Emotion, len(emotions))
	copy(out, emotions)
	return out
}

func LookupEmotion(id string) (Emotion, bool) {
	for _, e := range emotions {
		if e.ID == id {
			return e, true
		}
	}
	return Emotion{}, false
}

// HasContent reports whether an entry holds anything worth listing.
func HasContent(e storage.JournalEntry) bool {
	if len(e.Emotions) > 0 || strings.TrimSpace(e.Learned) != "" || e.Video != nil {
		return true
	}
	for i := 0; i < JournalSlots; i++ {
		if strings.TrimSpace(e.Proud[i]) != "" || strings.TrimSpace(e.Improve[i]) != "" {
			return true
		}
	}
	return false
}

// JournalEntry returns the entry for dateKey. The first visit to a date
// creates and saves an empty entry.
func (s *Service) JournalEntry(ctx context.Context, dateKey string) (storage.JournalEntry, error) {
	if _, err := ParseDateKey(dateKey, time.Local); err != nil {
		return storage.JournalEntry{}, err
	}
	s.mu.Lock()
	e, ok := s.state.Logs[dateKey]
	s.mu.Unlock()
	if ok {
		return cloneEntry(e), nil
	}
	return s.editEntry(ctx, dateKey, func(*storage.JournalEntry) {})
}

// JournalDates lists every date with an entry, newest first.
func (s *Service) JournalDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.state.Logs))
	for k := range s.state.Logs {
		out = append(out, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// ToggleEmotion adds the emotion to the entry's set, or removes it if present.
func (s *Service) ToggleEmotion(ctx context.Context, dateKey, emotion string) (storage.JournalEntry, error) {
	if _, ok := LookupEmotion(emotion); !ok {
		return storage.JournalEntry{}, ValidationError{Field: "emotion", Reason: "unknown emotion " + quote(emotion)}
	}
	return s.editEntry(ctx, dateKey, func(e *storage.JournalEntry) {
		for i, id := range e.Emotions {
			if id == emotion {
				e.Emotions = append(e.Emotions[:i], e.Emotions[i+1:]...)
				return
			}
		}
		e.Emotions = append(e.Emotions, emotion)
	})
}

func (s *Service) SetProud(ctx context.Context, dateKey string, slot int, text string) (storage.JournalEntry, error) {
	if err := checkSlot(slot); err != nil {
		return storage.JournalEntry{}, err
	}
	return s.editEntry(ctx, dateKey, func(e *storage.JournalEntry) { e.Proud[slot] = text })
}

func (s *Service) SetImprove(ctx context.Context, dateKey string, slot int, text string) (storage.JournalEntry, error) {
	if err := checkSlot(slot); err != nil {
		return storage.JournalEntry{}, err
	}
	return s.editEntry(ctx, dateKey, func(e *storage.JournalEntry) { e.Improve[slot] = text })
}

func (s *Service) SetLearned(ctx context.Context, dateKey, text string) (storage.JournalEntry, error) {
	return s.editEntry(ctx, dateKey, func(e *storage.JournalEntry) { e.Learned = text })
}

// AttachVideo stores an opaque reference; the media itself lives elsewhere.
func (s *Service) AttachVideo(ctx context.Context, dateKey, name, ref string) (storage.JournalEntry, error) {
	if strings.TrimSpace(ref) == "" {
		return storage.JournalEntry{}, ValidationError{Field: "ref", Reason: "is required"}
	}
	return s.editEntry(ctx, dateKey, func(e *storage.JournalEntry) {
		e.Video = &storage.Video{Name: name, Ref: ref}
	})
}

func (s *Service) RemoveVideo(ctx context.Context, dateKey string) (storage.JournalEntry, error) {
	return s.editEntry(ctx, dateKey, func(e *storage.JournalEntry) { e.Video = nil })
}

func (s *Service) editEntry(ctx context.Context, dateKey string, fn func(*storage.JournalEntry)) (storage.JournalEntry, error) {
	if _, err := ParseDateKey(dateKey, time.Local); err != nil {
		return storage.JournalEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make(map[string]storage.JournalEntry, len(s.state.Logs)+1)
	for k, e := range s.state.Logs {
		logs[k] = cloneEntry(e)
	}
	e, ok := logs[dateKey]
	if !ok {
		e = emptyEntry(dateKey)
	}
	fn(&e)
	logs[dateKey] = e

	if err := s.save(ctx, storage.Record{Key: storage.KeyLogs, Value: logs}); err != nil {
		return storage.JournalEntry{}, err
	}
	s.state.Logs = logs
	return cloneEntry(e), nil
}

func emptyEntry(dateKey string) storage.JournalEntry {
	return storage.JournalEntry{DateKey: dateKey, Emotions: []string{}}
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= JournalSlots {
		return ValidationError{Field: "slot", Reason: "out of range"}
	}
	return nil
}
