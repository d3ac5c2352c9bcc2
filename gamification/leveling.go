package gamification

// MaxLevel is the highest level a user can reach.
const MaxLevel = 5

// levelThresholds maps a minimum XP to its level, highest first.
// The first threshold the XP meets wins.
var levelThresholds = []struct {
	MinXP int
	Level int
}{
	{2000, 5},
	{1000, 4},
	{600, 3},
	{200, 2},
	{0, 1},
}

// Level computes the level for a given XP total.
// The result is always within [1, MaxLevel] and never decreases as XP grows.
func Level(xp int) int {
	for _, t := range levelThresholds {
		if xp >= t.MinXP {
			return t.Level
		}
	}
	return 1
}

// XPToNextLevel returns how much XP is missing until the next level,
// or 0 when the user is already at MaxLevel.
func XPToNextLevel(xp int) int {
	current := Level(xp)
	if current >= MaxLevel {
		return 0
	}
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if levelThresholds[i].Level == current+1 {
			return levelThresholds[i].MinXP - xp
		}
	}
	return 0
}
