package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

func newPlayer(name string) storage.Player {
	stats := make(map[string]int, len(StatKeys))
	for _, k := range StatKeys {
		stats[string(k)] = 0
	}
	return storage.Player{Name: name, Level: 1, XP: 0, Stats: stats}
}

// normalizePlayer repairs a loaded player: missing stats are zeroed and
// level/xp are carried back inside the cap invariant.
func normalizePlayer(p storage.Player, defaultName string) storage.Player {
	p = clonePlayer(p)
	if p.Name == "" {
		p.Name = defaultName
	}
	for _, k := range StatKeys {
		if _, ok := p.Stats[string(k)]; !ok {
			p.Stats[string(k)] = 0
		}
	}
	c := ApplyXPDelta(p.Level, p.XP, 0)
	p.Level, p.XP = c.LevelAfter, c.XPAfter
	return p
}

func clonePlayer(p storage.Player) storage.Player {
	stats := make(map[string]int, len(p.Stats))
	for k, v := range p.Stats {
		stats[k] = v
	}
	p.Stats = stats
	return p
}

// reward applies amount to a copy of p. When stat is non-empty the raw amount
// is also added to that stat's running total.
func reward(p storage.Player, stat StatKey, amount int) (storage.Player, LevelChange) {
	p = clonePlayer(p)
	c := ApplyXPDelta(p.Level, p.XP, amount)
	p.Level, p.XP = c.LevelAfter, c.XPAfter
	if stat != "" {
		p.Stats[string(stat)] += amount
	}
	return p, c
}

func (s *Service) Player() storage.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlayer(s.state.User)
}

func (s *Service) Rename(ctx context.Context, name string) (storage.Player, error) {
	n, err := normalizeText("name", name)
	if err != nil {
		return storage.Player{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := clonePlayer(s.state.User)
	p.Name = n
	if err := s.save(ctx, storage.Record{Key: storage.KeyUser, Value: p}); err != nil {
		return storage.Player{}, err
	}
	s.state.User = p
	return clonePlayer(p), nil
}

// AddXP applies a delta to level and xp only.
func (s *Service) AddXP(ctx context.Context, amount int) (RewardResult, error) {
	return s.applyPlayerReward(ctx, "", amount)
}

// ApplyStat applies a delta to level/xp and to the stat's running total.
func (s *Service) ApplyStat(ctx context.Context, stat StatKey, amount int) (RewardResult, error) {
	if !stat.IsValid() {
		return RewardResult{}, ValidationError{Field: "stat", Reason: "unknown stat " + quote(string(stat))}
	}
	return s.applyPlayerReward(ctx, stat, amount)
}

// PoorDecision records a bad choice against a stat.
func (s *Service) PoorDecision(ctx context.Context, stat StatKey) (RewardResult, error) {
	return s.ApplyStat(ctx, stat, PoorDecisionPenalty)
}

func (s *Service) applyPlayerReward(ctx context.Context, stat StatKey, amount int) (RewardResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, change := reward(s.state.User, stat, amount)
	if err := s.save(ctx, storage.Record{Key: storage.KeyUser, Value: p}); err != nil {
		return RewardResult{}, err
	}
	s.state.User = p
	s.log.Debug("xp applied", zap.String("stat", string(stat)), zap.Int("amount", amount),
		zap.Int("level", change.LevelAfter), zap.Int("xp", change.XPAfter))
	s.announce(change)
	return RewardResult{Applied: true, XPAwarded: amount, Stat: stat, Change: change}, nil
}
