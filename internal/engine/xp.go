package engine

const (
	// XPBaseCap is the XP needed to advance from level 1.
	XPBaseCap = 100
	// XPCapStep is the extra XP each further level costs.
	XPCapStep = 25
)

// XPCap returns the XP required to advance FROM the given level.
// Level 1 needs 100, level 2 needs 125, level 3 needs 150, and so on.
// Levels below 1 are treated as 1.
func XPCap(level int) int {
	if level < 1 {
		level = 1
	}
	return XPBaseCap + (level-1)*XPCapStep
}

// LevelChange describes one application of an XP delta.
type LevelChange struct {
	LevelBefore int
	LevelAfter  int
	XPBefore    int
	XPAfter     int
	// Clamped is true when the delta ran past level 1, 0 XP and was floored.
	Clamped bool
}

func (c LevelChange) LevelUp() bool   { return c.LevelAfter > c.LevelBefore }
func (c LevelChange) LevelDown() bool { return c.LevelAfter < c.LevelBefore }

// ApplyXPDelta carries a signed delta across level boundaries.
//
// Positive overflow levels up as many times as needed. Negative underflow
// borrows the previous level's cap until xp is non-negative or level 1 is
// reached, where xp is floored at 0. The result always satisfies
// 0 <= xp < XPCap(level).
func ApplyXPDelta(level, xp, amount int) LevelChange {
	if level < 1 {
		level = 1
	}
	c := LevelChange{LevelBefore: level, XPBefore: xp}

	curXP := xp + amount
	curLevel := level

	for curXP >= XPCap(curLevel) {
		curXP -= XPCap(curLevel)
		curLevel++
	}
	for curXP < 0 && curLevel > 1 {
		curLevel--
		curXP += XPCap(curLevel)
	}
	if curLevel == 1 && curXP < 0 {
		curXP = 0
		c.Clamped = true
	}

	c.LevelAfter = curLevel
	c.XPAfter = curXP
	return c
}

// LevelProgress returns the fraction of the current level's cap earned, in [0,1).
func LevelProgress(level, xp int) float64 {
	need := XPCap(level)
	if xp <= 0 {
		return 0
	}
	if xp >= need {
		return 1
	}
	return float64(xp) / float64(need)
}
