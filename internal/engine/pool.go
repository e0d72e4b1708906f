package engine

import "github.com/jaydenlee09/GameOfLife/internal/storage"

// ChallengeTemplate is a predefined challenge in the built-in pool.
type ChallengeTemplate struct {
	ID       string
	Text     string
	XP       int
	Category StatKey
	Duration ChallengeDuration
}

func (t ChallengeTemplate) instantiate() storage.Challenge {
	return storage.Challenge{
		ID:       t.ID,
		Text:     t.Text,
		XP:       t.XP,
		Category: string(t.Category),
		Duration: string(t.Duration),
	}
}

// DefaultPool returns the built-in challenges.
func DefaultPool() []ChallengeTemplate {
	return []ChallengeTemplate{
		// Daily
		{ID: "run_3km", Text: "Go on a 3km run", XP: 30, Category: StatHealth, Duration: DurationDaily},
		{ID: "no_phone_3h", Text: "No phone for 3 hours", XP: 30, Category: StatMentalHealth, Duration: DurationDaily},
		{ID: "no_phone_day", Text: "No phone for the whole day", XP: 40, Category: StatMentalHealth, Duration: DurationDaily},
		{ID: "drink_water", Text: "Drink 4 bottles of water", XP: 30, Category: StatHealth, Duration: DurationDaily},
		{ID: "vlog_day", Text: "Vlog the entire day hour by hour", XP: 40, Category: StatCreativity, Duration: DurationDaily},

		// Weekly
		{ID: "sleep_schedule", Text: "Sleep at the same time for one week", XP: 100, Category: StatDiscipline, Duration: DurationWeekly},
		{ID: "no_sugar_week", Text: "No sugar for the whole week", XP: 100, Category: StatHealth, Duration: DurationWeekly},
		{ID: "pushups_week", Text: "50 pushups everyday for a week", XP: 100, Category: StatStrength, Duration: DurationWeekly},

		// Monthly
		{ID: "meditate_month", Text: "5 minute meditation everyday for a month", XP: 500, Category: StatMentalHealth, Duration: DurationMonthly},
		{ID: "no_junk_month", Text: "No junk food for a month", XP: 500, Category: StatHealth, Duration: DurationMonthly},
	}
}
