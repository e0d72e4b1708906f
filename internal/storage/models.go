package storage

import "time"

// Logical record keys. Each key holds one independently loaded document.
const (
	KeyTodos      = "todos"
	KeyHabits     = "habits"
	KeyLogs       = "logs"
	KeyChallenges = "challenges"
	KeyUser       = "user"
	KeyLastDate   = "lastDate"
)

// AllKeys lists every record key in load order.
var AllKeys = []string{KeyTodos, KeyHabits, KeyLogs, KeyChallenges, KeyUser, KeyLastDate}

type Player struct {
	Name  string         `json:"name"`
	Level int            `json:"level"`
	XP    int            `json:"xp"`
	Stats map[string]int `json:"stats"`
}

type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	XP        int       `json:"xp"`
	TimeFrame string    `json:"timeFrame"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes"`
	Subtasks  []Subtask `json:"subtasks"`
}

type Habit struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Attribute string          `json:"attribute"`
	History   map[string]bool `json:"history"` // date key (YYYY-MM-DD) -> true
}

type Challenge struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	XP        int        `json:"xp"`
	Category  string     `json:"category"`
	Duration  string     `json:"duration"`
	Completed bool       `json:"completed"`
	Started   bool       `json:"started"`
	StartedAt *time.Time `json:"startedAt"`
	IsCustom  bool       `json:"isCustom,omitempty"`
}

// Video is an opaque reference to a journal attachment; the core never reads it.
type Video struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
}

type JournalEntry struct {
	DateKey  string    `json:"dateKey"`
	Emotions []string  `json:"emotions"`
	Proud    [3]string `json:"proud"`
	Improve  [3]string `json:"improve"`
	Learned  string    `json:"learned"`
	Video    *Video    `json:"video,omitempty"`
}

// State is the whole persisted tree, one field per record key.
type State struct {
	Todos      []Task
	Habits     []Habit
	Logs       map[string]JournalEntry
	Challenges []Challenge
	User       Player
	LastDate   string
}
