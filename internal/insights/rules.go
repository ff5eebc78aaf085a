package insights

import (
	"fmt"
	"math"
	"strconv"
)

// Thresholds below which a rule fires. Comparisons are strict.
const (
	ProteinTargetGrams    = 100.0
	SleepTargetHours      = 7.0
	WorkoutsPerWeekTarget = 4
	WaterTargetGlasses    = 8.0
)

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Recommendation Recommendation
}

// Rule evaluates a snapshot against the user's goals.
type Rule func(snapshot HealthSnapshot, goals []Goal) RuleResult

// DefaultRules returns the rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		ProteinRule,
		SleepRule,
		WorkoutFrequencyRule,
		HydrationRule,
		RecoveryRule,
	}
}

// ---------- RULES ----------

// Low protein intake holds back muscle gain.
func ProteinRule(snapshot HealthSnapshot, goals []Goal) RuleResult {
	protein := snapshot.Nutrition.Protein
	if protein >= ProteinTargetGrams {
		return RuleResult{}
	}

	return RuleResult{
		Triggered: true,
		Recommendation: Recommendation{
			ID:       "protein-boost",
			Category: CategoryNutrition,
			Title:    "Increase Protein Intake",
			Description: fmt.Sprintf(
				"You're %sg below your protein goal. Adding lean protein sources will support muscle growth and recovery.",
				formatGrams(ProteinTargetGrams-protein),
			),
			Impact:     ImpactHigh,
			Difficulty: DifficultyEasy,
			Timeframe:  "1-2 weeks",
			ActionSteps: []string{
				"Add Greek yogurt as a morning snack (15g protein)",
				"Include a palm-sized portion of lean meat at lunch",
				"Try a protein smoothie post-workout",
				"Snack on almonds or hard-boiled eggs",
			},
			Reasoning:   "Based on your muscle gain goal, optimal protein intake should be 1.6-2.2g per kg body weight.",
			RelatedGoal: goalID(goals, GoalMuscleGain),
		},
	}
}

// Short sleep disrupts recovery and appetite regulation.
func SleepRule(snapshot HealthSnapshot, goals []Goal) RuleResult {
	if snapshot.Sleep.AverageHours >= SleepTargetHours {
		return RuleResult{}
	}

	return RuleResult{
		Triggered: true,
		Recommendation: Recommendation{
			ID:          "sleep-optimization",
			Category:    CategorySleep,
			Title:       "Optimize Sleep Duration",
			Description: "Increasing sleep to 7-9 hours will improve recovery, metabolism, and weight loss progress.",
			Impact:      ImpactHigh,
			Difficulty:  DifficultyModerate,
			Timeframe:   "2-4 weeks",
			ActionSteps: []string{
				"Set a consistent bedtime 30 minutes earlier",
				"Create a wind-down routine with no screens",
				"Keep bedroom cool (18-20°C) and dark",
				"Avoid caffeine after 2 PM",
			},
			Reasoning:   "Poor sleep disrupts hormones that regulate hunger and metabolism, hindering weight loss.",
			RelatedGoal: goalID(goals, GoalWeightLoss),
		},
	}
}

// Fewer than four workouts a week leaves room for cardio.
func WorkoutFrequencyRule(snapshot HealthSnapshot, goals []Goal) RuleResult {
	if snapshot.Activity.WorkoutsThisWeek >= WorkoutsPerWeekTarget {
		return RuleResult{}
	}

	return RuleResult{
		Triggered: true,
		Recommendation: Recommendation{
			ID:          "workout-frequency",
			Category:    CategoryExercise,
			Title:       "Add Cardio Sessions",
			Description: "Including 2 cardio sessions per week will accelerate weight loss and improve cardiovascular health.",
			Impact:      ImpactMedium,
			Difficulty:  DifficultyModerate,
			Timeframe:   "1 week",
			ActionSteps: []string{
				"Add 20-minute brisk walks on rest days",
				"Try HIIT workouts 2x per week",
				"Use stairs instead of elevators",
				"Dance or bike for 30 minutes on weekends",
			},
			Reasoning:   "Cardio creates additional calorie deficit needed for your weight loss goal.",
			RelatedGoal: goalID(goals, GoalWeightLoss),
		},
	}
}

// Under eight glasses of water a day.
func HydrationRule(snapshot HealthSnapshot, goals []Goal) RuleResult {
	if snapshot.Nutrition.Water >= WaterTargetGlasses {
		return RuleResult{}
	}

	return RuleResult{
		Triggered: true,
		Recommendation: Recommendation{
			ID:          "hydration-boost",
			Category:    CategoryHydration,
			Title:       "Improve Hydration",
			Description: "Proper hydration supports metabolism, reduces false hunger, and improves workout performance.",
			Impact:      ImpactMedium,
			Difficulty:  DifficultyEasy,
			Timeframe:   "1 week",
			ActionSteps: []string{
				"Drink a glass of water upon waking",
				"Set hourly water reminders on your phone",
				"Carry a water bottle throughout the day",
				"Drink water before each meal",
			},
			Reasoning:   "Adequate hydration is crucial for optimal metabolic function and appetite regulation.",
			RelatedGoal: goalID(goals, GoalWeightLoss),
		},
	}
}

// Always fires.
func RecoveryRule(_ HealthSnapshot, goals []Goal) RuleResult {
	return RuleResult{
		Triggered: true,
		Recommendation: Recommendation{
			ID:          "recovery-focus",
			Category:    CategoryRecovery,
			Title:       "Active Recovery Days",
			Description: "Incorporate light activities on rest days to maintain momentum without overtraining.",
			Impact:      ImpactMedium,
			Difficulty:  DifficultyEasy,
			Timeframe:   "Ongoing",
			ActionSteps: []string{
				"Take 10-minute walks after meals",
				"Do gentle stretching or yoga",
				"Practice meditation for 5-10 minutes",
				"Try foam rolling for muscle recovery",
			},
			Reasoning:   "Active recovery promotes blood flow, reduces muscle stiffness, and maintains healthy habits.",
			RelatedGoal: goalID(goals, GoalMuscleGain),
		},
	}
}

// goalID returns the id of the first goal of the given type, or "".
func goalID(goals []Goal, t GoalType) string {
	for _, g := range goals {
		if g.Type == t {
			return g.ID
		}
	}
	return ""
}

// formatGrams rounds to one decimal and drops a trailing ".0". A positive
// deficit never renders as "0".
func formatGrams(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 && v > 0 {
		r = 0.1
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
