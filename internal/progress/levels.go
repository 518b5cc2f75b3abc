package progress

// levelThreshold maps cumulative XP to a player level.
type levelThreshold struct {
	Level int
	XP    int
	Title string
}

var levelThresholds = []levelThreshold{
	{1, 0, "Rookie"},
	{5, 500, "Rookie"},
	{10, 2000, "Quiz Fan"},
	{15, 5000, "Quiz Fan"},
	{20, 10000, "Enthusiast"},
	{25, 18000, "Enthusiast"},
	{30, 28000, "Expert"},
	{35, 40000, "Expert"},
	{40, 55000, "Master"},
	{45, 72000, "Master"},
	{50, 100000, "Champion"},
}

// xpPerBonusLevel is the flat cost of each level past the top threshold.
const xpPerBonusLevel = 10000

// LevelForXP derives the player level from cumulative XP. Past the top
// threshold, every additional 10k XP is one more level.
func LevelForXP(totalXP int) int {
	last := levelThresholds[len(levelThresholds)-1]
	if totalXP >= last.XP {
		return last.Level + (totalXP-last.XP)/xpPerBonusLevel
	}
	level := levelThresholds[0].Level
	for _, t := range levelThresholds {
		if totalXP >= t.XP {
			level = t.Level
		}
	}
	return level
}

// TitleForXP returns the display title for a cumulative XP total.
func TitleForXP(totalXP int) string {
	title := levelThresholds[0].Title
	for _, t := range levelThresholds {
		if totalXP >= t.XP {
			title = t.Title
		}
	}
	return title
}

// XPEarned converts a game score into XP. The mapping is 1:1.
func XPEarned(gameScore int) int {
	return gameScore
}
