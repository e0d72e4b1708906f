package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

// WeeklyPicks is how many challenges SelectWeekly returns.
const WeeklyPicks = 3

// weekKeyLayout matches a date-only rendering such as "Mon Mar 02 2026".
const weekKeyLayout = "Mon Jan 02 2006"

// MondayOf returns local midnight of the Monday in t's week.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	return addDays(t, -offset)
}

// WeekKey identifies the week containing t by its Monday.
func WeekKey(t time.Time) string {
	return MondayOf(t).Format(weekKeyLayout)
}

// weekRand is a 32-bit linear congruential generator seeded from a week key.
type weekRand struct {
	seed uint32
}

func newWeekRand(weekKey string) *weekRand {
	var seed uint32
	for _, r := range weekKey {
		seed += uint32(r)
	}
	return &weekRand{seed: seed}
}

// next returns |seed| / 2^32, reading the state as a signed 32-bit value.
// The result is in [0, 0.5].
func (r *weekRand) next() float64 {
	r.seed = r.seed*1664525 + 1013904223
	v := int64(int32(r.seed))
	if v < 0 {
		v = -v
	}
	return float64(v) / (1 << 32)
}

// SelectWeekly deterministically picks WeeklyPicks challenges from pool for
// weekKey. The same (pool, weekKey) always yields the same ordered picks, so
// a selection never has to be stored to be recovered.
func SelectWeekly(pool []ChallengeTemplate, weekKey string) []storage.Challenge {
	shuffled := make([]ChallengeTemplate, len(pool))
	copy(shuffled, pool)

	rng := newWeekRand(weekKey)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(math.Floor(rng.next() * float64(i+1)))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	n := WeeklyPicks
	if len(shuffled) < n {
		n = len(shuffled)
	}
	out := make([]storage.Challenge, 0, n)
	for _, t := range shuffled[:n] {
		out = append(out, t.instantiate())
	}
	return out
}

// MergeChallenges reconciles saved challenge progress against the pool.
//
// Every pool template yields one challenge, in pool order: template fields win,
// while started/completed/startedAt come from the saved record with the same
// id, if any. Saved records with no template are user-created; they are kept
// as-is (flagged custom) after the pool entries, in saved order. Merging the
// output again with the same pool returns the same output.
func MergeChallenges(pool []ChallengeTemplate, saved []storage.Challenge) []storage.Challenge {
	byID := make(map[string]storage.Challenge, len(saved))
	for _, c := range saved {
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}

	inPool := make(map[string]bool, len(pool))
	out := make([]storage.Challenge, 0, len(pool)+len(saved))
	for _, t := range pool {
		inPool[t.ID] = true
		c := t.instantiate()
		if s, ok := byID[t.ID]; ok {
			c.Started = s.Started
			c.Completed = s.Completed
			if s.StartedAt != nil {
				at := *s.StartedAt
				c.StartedAt = &at
			}
		}
		out = append(out, c)
	}

	seen := map[string]bool{}
	for _, c := range saved {
		if inPool[c.ID] || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		c.IsCustom = true
		out = append(out, c)
	}
	return out
}

// TimeLeft returns the remaining window of a started challenge. ok is false
// when the challenge has not been started.
func TimeLeft(c storage.Challenge, now time.Time) (left time.Duration, ok bool) {
	if !c.Started || c.StartedAt == nil {
		return 0, false
	}
	deadline := c.StartedAt.Add(ChallengeDuration(c.Duration).Length())
	return deadline.Sub(now), true
}

// FormatTimeLeft renders a countdown. Weekly and monthly challenges show
// days and hours; daily ones drill down to seconds.
func FormatTimeLeft(left time.Duration, d ChallengeDuration) string {
	if left <= 0 {
		return "Time's up!"
	}
	total := int(left / time.Second)
	days := total / 86400
	hrs := (total % 86400) / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	if d == DurationMonthly || d == DurationWeekly {
		if days > 0 {
			return fmt.Sprintf("%dd %dh left", days, hrs)
		}
		return fmt.Sprintf("%dh left", hrs)
	}
	hrs += days * 24
	switch {
	case hrs > 0:
		return fmt.Sprintf("%dh %dm left", hrs, mins)
	case mins > 0:
		return fmt.Sprintf("%dm %ds left", mins, secs)
	default:
		return fmt.Sprintf("%ds left", secs)
	}
}

// GroupChallenges splits challenges into open ones by duration and completed ones.
func GroupChallenges(all []storage.Challenge) (open map[ChallengeDuration][]storage.Challenge, completed []storage.Challenge) {
	open = map[ChallengeDuration][]storage.Challenge{}
	for _, c := range all {
		if c.Completed {
			completed = append(completed, c)
			continue
		}
		d := ChallengeDuration(c.Duration)
		open[d] = append(open[d], c)
	}
	return open, completed
}

// CustomChallengePrefix marks ids of user-created challenges.
const CustomChallengePrefix = "custom_"

type AddChallengeInput struct {
	Text     string
	XP       int // 0 selects the duration's default
	Category StatKey
	Duration ChallengeDuration
}

func (s *Service) Challenges() []storage.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyChallenges()
}

// FeaturedChallenges returns this week's picks from the pool, annotated with
// saved progress. Nothing is persisted.
func (s *Service) FeaturedChallenges() []storage.Challenge {
	picks := SelectWeekly(s.pool, WeekKey(s.clock.Now()))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range picks {
		for _, c := range s.state.Challenges {
			if c.ID == p.ID {
				picks[i] = cloneChallenge(c)
				break
			}
		}
	}
	return picks
}

func (s *Service) StartChallenge(ctx context.Context, id string) (bool, error) {
	now := s.clock.Now()
	return s.mutateChallenge(ctx, id, func(c *storage.Challenge) bool {
		if c.Completed {
			return false
		}
		c.Started = true
		c.StartedAt = &now
		return true
	})
}

// CompleteChallenge grants the challenge's xp to its category once.
func (s *Service) CompleteChallenge(ctx context.Context, id string) (RewardResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.copyChallenges()
	idx := challengeIndex(list, id)
	if idx < 0 || list[idx].Completed {
		return RewardResult{}, nil
	}
	list[idx].Completed = true

	stat := parseStoredStat(list[idx].Category)
	p, change := reward(s.state.User, stat, list[idx].XP)
	if err := s.save(ctx,
		storage.Record{Key: storage.KeyChallenges, Value: list},
		storage.Record{Key: storage.KeyUser, Value: p},
	); err != nil {
		return RewardResult{}, err
	}
	s.state.Challenges = list
	s.state.User = p
	s.log.Debug("challenge completed", zap.String("id", id), zap.Int("xp", list[idx].XP))
	s.announce(change)
	return RewardResult{Applied: true, XPAwarded: list[idx].XP, Stat: stat, Change: change}, nil
}

func (s *Service) AddChallenge(ctx context.Context, in AddChallengeInput) (storage.Challenge, error) {
	text, err := normalizeText("text", in.Text)
	if err != nil {
		return storage.Challenge{}, err
	}
	d := in.Duration
	if d == "" {
		d = DurationDaily
	}
	if !d.IsValid() {
		return storage.Challenge{}, ValidationError{Field: "duration", Reason: "unknown duration " + quote(string(d))}
	}
	cat := in.Category
	if cat == "" {
		cat = StatDiscipline
	}
	if !cat.IsValid() {
		return storage.Challenge{}, ValidationError{Field: "category", Reason: "unknown stat " + quote(string(cat))}
	}
	if in.XP < 0 {
		return storage.Challenge{}, ValidationError{Field: "xp", Reason: "must not be negative"}
	}
	xp := in.XP
	if xp == 0 {
		xp = d.DefaultXP()
	}

	c := storage.Challenge{
		ID:       CustomChallengePrefix + newID(),
		Text:     text,
		XP:       xp,
		Category: string(cat),
		Duration: string(d),
		IsCustom: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.copyChallenges(), c)
	if err := s.save(ctx, storage.Record{Key: storage.KeyChallenges, Value: list}); err != nil {
		return storage.Challenge{}, err
	}
	s.state.Challenges = list
	return c, nil
}

// DeleteChallenge removes a custom challenge. Pool challenges are permanent.
func (s *Service) DeleteChallenge(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.copyChallenges()
	idx := challengeIndex(list, id)
	if idx < 0 {
		return false, nil
	}
	if !list[idx].IsCustom && !strings.HasPrefix(id, CustomChallengePrefix) {
		return false, ValidationError{Field: "id", Reason: "built-in challenge " + quote(id) + " cannot be deleted"}
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := s.save(ctx, storage.Record{Key: storage.KeyChallenges, Value: list}); err != nil {
		return false, err
	}
	s.state.Challenges = list
	return true, nil
}

func (s *Service) mutateChallenge(ctx context.Context, id string, fn func(*storage.Challenge) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.copyChallenges()
	idx := challengeIndex(list, id)
	if idx < 0 || !fn(&list[idx]) {
		return false, nil
	}
	if err := s.save(ctx, storage.Record{Key: storage.KeyChallenges, Value: list}); err != nil {
		return false, err
	}
	s.state.Challenges = list
	return true, nil
}

func challengeIndex(list []storage.Challenge, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) copyChallenges() []storage.Challenge {
	out := make([]storage.Challenge, len(s.state.Challenges))
	for i, c := range s.state.Challenges {
		out[i] = cloneChallenge(c)
	}
	return out
}
