package engine

import "time"

// StatKey is one of the nine fixed player attributes.
type StatKey string

const (
	StatStrength     StatKey = "strength"
	StatIntelligence StatKey = "intelligence"
	StatCharisma     StatKey = "charisma"
	StatDiscipline   StatKey = "discipline"
	StatMentalHealth StatKey = "mentalHealth"
	StatHealth       StatKey = "health"
	StatFocus        StatKey = "focus"
	StatCreativity   StatKey = "creativity"
	StatProductivity StatKey = "productivity"
)

// StatKeys is the closed stat set in display order.
var StatKeys = []StatKey{
	StatStrength,
	StatIntelligence,
	StatCharisma,
	StatDiscipline,
	StatMentalHealth,
	StatHealth,
	StatFocus,
	StatCreativity,
	StatProductivity,
}

var statLabels = map[StatKey]string{
	StatStrength:     "Strength",
	StatIntelligence: "Intelligence",
	StatCharisma:     "Charisma",
	StatDiscipline:   "Discipline",
	StatMentalHealth: "Mental Health",
	StatHealth:       "Health",
	StatFocus:        "Focus",
	StatCreativity:   "Creativity",
	StatProductivity: "Productivity",
}

func (s StatKey) IsValid() bool {
	_, ok := statLabels[s]
	return ok
}

func (s StatKey) Label() string {
	if l, ok := statLabels[s]; ok {
		return l
	}
	return string(s)
}

// TimeFrame schedules a task.
type TimeFrame string

const (
	TimeFrameToday     TimeFrame = "today"
	TimeFrameTomorrow  TimeFrame = "tomorrow"
	TimeFrameThisWeek  TimeFrame = "this-week"
	TimeFrameThisMonth TimeFrame = "this-month"
)

var TimeFrames = []TimeFrame{TimeFrameToday, TimeFrameTomorrow, TimeFrameThisWeek, TimeFrameThisMonth}

func (t TimeFrame) IsValid() bool {
	switch t {
	case TimeFrameToday, TimeFrameTomorrow, TimeFrameThisWeek, TimeFrameThisMonth:
		return true
	default:
		return false
	}
}

// XP is the reward tier for a task created in this time frame.
func (t TimeFrame) XP() int {
	switch t {
	case TimeFrameThisWeek:
		return 50
	case TimeFrameThisMonth:
		return 100
	default:
		return 20
	}
}

// AllowsSubtasks reports whether tasks in this time frame can be broken down.
func (t TimeFrame) AllowsSubtasks() bool {
	return t == TimeFrameThisWeek || t == TimeFrameThisMonth
}

func (t TimeFrame) Label() string {
	switch t {
	case TimeFrameToday:
		return "Today"
	case TimeFrameTomorrow:
		return "Tomorrow"
	case TimeFrameThisWeek:
		return "This Week"
	case TimeFrameThisMonth:
		return "This Month"
	default:
		return string(t)
	}
}

// ChallengeDuration is how long a started challenge runs.
type ChallengeDuration string

const (
	DurationDaily   ChallengeDuration = "daily"
	DurationWeekly  ChallengeDuration = "weekly"
	DurationMonthly ChallengeDuration = "monthly"
)

// DurationOrder is the display order used by challenge listings.
var DurationOrder = []ChallengeDuration{DurationMonthly, DurationWeekly, DurationDaily}

func (d ChallengeDuration) IsValid() bool {
	switch d {
	case DurationDaily, DurationWeekly, DurationMonthly:
		return true
	default:
		return false
	}
}

// Length is the wall-clock window of a started challenge. Unknown durations
// are treated as daily.
func (d ChallengeDuration) Length() time.Duration {
	switch d {
	case DurationWeekly:
		return 7 * 24 * time.Hour
	case DurationMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// DefaultXP is the suggested reward for a custom challenge.
func (d ChallengeDuration) DefaultXP() int {
	switch d {
	case DurationWeekly:
		return 100
	case DurationMonthly:
		return 500
	default:
		return 30
	}
}

const (
	// SubtaskXP is granted to the parent task's category per completed subtask.
	SubtaskXP = 10
	// HabitToggleXP is granted (or revoked) per habit date.
	HabitToggleXP = 15
	// PoorDecisionPenalty is applied to the chosen stat.
	PoorDecisionPenalty = -100
)
