package insights

import (
	"math"
	"time"
)

// Progress returns how close the goal is to its target as a fraction in
// [0, 1]. For weight loss a current value above target is progress toward
// the target from above, so the ratio is inverted.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	if g.Type == GoalWeightLoss && g.Current > g.Target {
		return clamp01(g.Target / g.Current)
	}
	return clamp01(g.Current / g.Target)
}

// DaysLeft returns the whole days until the deadline, rounded up, 0 once it has passed.
func (g Goal) DaysLeft(now time.Time) int {
	if g.Deadline.IsZero() || !g.Deadline.After(now) {
		return 0
	}
	return int(math.Ceil(g.Deadline.Sub(now).Hours() / 24))
}

type GoalProgress struct {
	Goal
	Completion float64 `json:"progress"`
	DaysLeft   int     `json:"daysLeft"`
}

func goalsProgress(goals []Goal, now time.Time) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgress{
			Goal:       g,
			Completion: math.Round(g.Progress()*1000) / 1000,
			DaysLeft:   g.DaysLeft(now),
		})
	}
	return out
}
