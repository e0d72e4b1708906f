package engine

import "github.com/jaydenlee09/GameOfLife/internal/storage"

// Achievement is a badge derived from the current state. Nothing about it
// is stored; it is recomputed on every read.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker evaluates badges against one state snapshot.
type AchievementChecker struct {
	state storage.State
}

func NewAchievementChecker(state storage.State) *AchievementChecker {
	return &AchievementChecker{state: state}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("getting_started", "Getting Started", "Reach level 3", "🌿", 3),
		c.levelAchievement("on_the_path", "On the Path", "Reach level 5", "🌳", 5),
		c.levelAchievement("seasoned", "Seasoned", "Reach level 10", "⭐", 10),
		c.levelAchievement("master", "Master", "Reach level 20", "💫", 20),

		// Stat milestones
		c.statAchievement("strong", "Strong", "Earn 500 Strength", "💪", StatStrength, 500),
		c.statAchievement("scholar", "Scholar", "Earn 500 Intelligence", "🧠", StatIntelligence, 500),
		c.statAchievement("steady", "Steady Mind", "Earn 500 Mental Health", "🧘", StatMentalHealth, 500),
		c.statAchievement("deep_work", "Deep Work", "Earn 500 Focus", "🎯", StatFocus, 500),

		// Habits
		c.habitAchievement("habit_former", "Habit Former", "Create a habit", "🔁"),
		c.streakAchievement("week_streak", "Seven Days", "Best habit streak of 7", "🔥", 7),
		c.streakAchievement("month_streak", "Thirty Days", "Best habit streak of 30", "🏆", 30),

		// Challenges and journal
		c.challengeAchievement("first_challenge", "Challenger", "Complete a challenge", "🏅", 1),
		c.challengeAchievement("five_challenges", "Relentless", "Complete 5 challenges", "🎖️", 5),
		c.journalAchievement("journaler", "Journaler", "Write 7 daily logs", "📓", 7),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := c.state.User.Level >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) statAchievement(id, name, desc, icon string, stat StatKey, total int) Achievement {
	earned := c.state.User.Stats[string(stat)] >= total
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) habitAchievement(id, name, desc, icon string) Achievement {
	earned := len(c.state.Habits) > 0
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := false
	for _, h := range c.state.Habits {
		if BestStreak(h.History) >= days {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) challengeAchievement(id, name, desc, icon string, count int) Achievement {
	done := 0
	for _, ch := range c.state.Challenges {
		if ch.Completed {
			done++
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: done >= count}
}

func (c *AchievementChecker) journalAchievement(id, name, desc, icon string, count int) Achievement {
	written := 0
	for _, e := range c.state.Logs {
		if HasContent(e) {
			written++
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: written >= count}
}

// Achievements evaluates every badge against the current state.
func (s *Service) Achievements() []Achievement {
	return NewAchievementChecker(s.Snapshot()).GetAchievements()
}
