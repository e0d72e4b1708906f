package engine

import "strings"

// ParseStat parses user input to a StatKey. Short forms such as "str" or
// "mental" are accepted. Unlike task text, a stat has no default.
func ParseStat(input string) (StatKey, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	switch s {
	case "":
		return "", ValidationError{Field: "stat", Reason: "is required"}
	case "str", "strength":
		return StatStrength, nil
	case "int", "intelligence":
		return StatIntelligence, nil
	case "cha", "charisma":
		return StatCharisma, nil
	case "dis", "discipline":
		return StatDiscipline, nil
	case "mh", "mental", "mentalhealth":
		return StatMentalHealth, nil
	case "hp", "health":
		return StatHealth, nil
	case "foc", "focus":
		return StatFocus, nil
	case "cre", "art", "creativity":
		return StatCreativity, nil
	case "pro", "prod", "productivity":
		return StatProductivity, nil
	default:
		return "", ValidationError{Field: "stat", Reason: "unknown stat " + quote(input)}
	}
}

func ParseTimeFrame(input string) (TimeFrame, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "today":
		return TimeFrameToday, nil
	case "tomorrow":
		return TimeFrameTomorrow, nil
	case "week", "this-week", "thisweek":
		return TimeFrameThisWeek, nil
	case "month", "this-month", "thismonth":
		return TimeFrameThisMonth, nil
	default:
		return "", ValidationError{Field: "timeFrame", Reason: "unknown time frame " + quote(input)}
	}
}

func ParseDuration(input string) (ChallengeDuration, error) {
	d := ChallengeDuration(strings.ToLower(strings.TrimSpace(input)))
	if d == "" {
		return DurationDaily, nil
	}
	if !d.IsValid() {
		return "", ValidationError{Field: "duration", Reason: "unknown duration " + quote(input)}
	}
	return d, nil
}

// parseStoredStat reads a persisted category. Stored data is trusted less than
// user input: an unknown value maps to discipline rather than failing.
func parseStoredStat(s string) StatKey {
	k := StatKey(strings.TrimSpace(s))
	if k.IsValid() {
		return k
	}
	return StatDiscipline
}

func parseStoredTimeFrame(s string) TimeFrame {
	t := TimeFrame(s)
	if t.IsValid() {
		return t
	}
	return TimeFrameToday
}

func quote(s string) string {
	return `"` + s + `"`
}
