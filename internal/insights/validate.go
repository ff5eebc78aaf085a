package insights

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidSnapshot = errors.New("invalid health snapshot")
	ErrInvalidGoal     = errors.New("invalid goal")
	ErrUnknownCategory = errors.New("unknown recommendation category")

	ErrInvalidAchievement = errors.New("invalid achievement")
)

// Validate rejects snapshots with negative or non-finite values. Every
// offending field is listed in the returned error.
func Validate(s HealthSnapshot) error {
	var bad []string

	checkFloat := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			bad = append(bad, name)
		}
	}
	checkBounded := func(name string, v, upper float64) {
		if math.IsNaN(v) || v < 0 || v > upper {
			bad = append(bad, name)
		}
	}
	checkInt := func(name string, v int) {
		if v < 0 {
			bad = append(bad, name)
		}
	}

	checkFloat("nutrition.dailyCalories", s.Nutrition.DailyCalories)
	checkFloat("nutrition.protein", s.Nutrition.Protein)
	checkFloat("nutrition.carbs", s.Nutrition.Carbs)
	checkFloat("nutrition.fat", s.Nutrition.Fat)
	checkFloat("nutrition.water", s.Nutrition.Water)

	checkInt("activity.steps", s.Activity.Steps)
	checkInt("activity.activeMinutes", s.Activity.ActiveMinutes)
	checkInt("activity.workoutsThisWeek", s.Activity.WorkoutsThisWeek)

	checkBounded("sleep.averageHours", s.Sleep.AverageHours, 24)
	checkBounded("sleep.quality", s.Sleep.Quality, 100)

	checkInt("streaks.nutrition", s.Streaks.Nutrition)
	checkInt("streaks.workout", s.Streaks.Workout)
	checkInt("streaks.sleep", s.Streaks.Sleep)
	checkInt("streaks.water", s.Streaks.Water)

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(bad, ", "))
	}
	return nil
}

func ValidateGoals(goals []Goal) error {
	seen := make(map[string]bool, len(goals))
	for i, g := range goals {
		if err := validateGoal(g); err != nil {
			return fmt.Errorf("goal %d: %w", i, err)
		}
		if seen[g.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidGoal, g.ID)
		}
		seen[g.ID] = true
	}
	return nil
}

func validateGoal(g Goal) error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidGoal)
	}
	switch g.Type {
	case GoalWeightLoss, GoalMuscleGain, GoalEndurance, GoalGeneralHealth:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidGoal, g.Type)
	}
	switch g.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidGoal, g.Priority)
	}
	if math.IsNaN(g.Target) || math.IsInf(g.Target, 0) || g.Target <= 0 {
		return fmt.Errorf("%w: target must be positive", ErrInvalidGoal)
	}
	if math.IsNaN(g.Current) || math.IsInf(g.Current, 0) || g.Current < 0 {
		return fmt.Errorf("%w: current must be non-negative", ErrInvalidGoal)
	}
	return nil
}

func ValidateAchievements(achievements []Achievement) error {
	seen := make(map[string]bool, len(achievements))
	for i, a := range achievements {
		switch {
		case strings.TrimSpace(a.ID) == "":
			return fmt.Errorf("achievement %d: %w: empty id", i, ErrInvalidAchievement)
		case a.Progress < 0:
			return fmt.Errorf("achievement %d: %w: negative progress", i, ErrInvalidAchievement)
		case a.Target < 0:
			return fmt.Errorf("achievement %d: %w: negative target", i, ErrInvalidAchievement)
		case seen[a.ID]:
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidAchievement, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// ParseCategory accepts a category name; "" and "all" mean no filter and
// return filter=false with a nil error.
func ParseCategory(s string) (c Category, filter bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return "", false, nil
	}
	for _, cat := range categories {
		if string(cat) == s {
			return cat, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// FilterByCategory keeps the recommendations of the given category, in order.
func FilterByCategory(recs []Recommendation, category string) ([]Recommendation, error) {
	c, filter, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if !filter {
		return recs, nil
	}

	out := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out, nil
}
