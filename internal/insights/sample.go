package insights

import "time"

const day = 24 * time.Hour

// SampleData returns the demo user: a snapshot that trips every rule, a
// weight loss and a protein goal, and the starter achievement catalog.
// Relative dates are computed from now.
func SampleData(now time.Time) Dataset {
	unlockedTwoDaysAgo := now.Add(-2 * day)
	unlockedYesterday := now.Add(-1 * day)

	return Dataset{
		HealthData: HealthSnapshot{
			Nutrition: Nutrition{
				DailyCalories: 1850,
				Protein:       68,
				Carbs:         180,
				Fat:           45,
				Water:         6,
			},
			Activity: Activity{
				Steps:            8240,
				ActiveMinutes:    45,
				WorkoutsThisWeek: 3,
				LastWorkoutType:  "Upper Body",
			},
			Sleep: Sleep{
				AverageHours: 6.5,
				Quality:      75,
			},
			Streaks: Streaks{
				Nutrition: 5,
				Workout:   3,
				Sleep:     2,
				Water:     7,
			},
		},
		Goals: []Goal{
			{
				ID:       "1",
				Type:     GoalWeightLoss,
				Target:   75,
				Current:  82,
				Unit:     "kg",
				Deadline: now.Add(90 * day),
				Priority: PriorityHigh,
			},
			{
				ID:       "2",
				Type:     GoalMuscleGain,
				Target:   100,
				Current:  68,
				Unit:     "g protein/day",
				Deadline: now.Add(60 * day),
				Priority: PriorityMedium,
			},
		},
		Achievements: []Achievement{
			{
				ID:           "first-week",
				Title:        "First Week Warrior",
				Description:  "Complete 7 days of nutrition tracking",
				Icon:         "🏆",
				Unlocked:     true,
				UnlockedDate: &unlockedTwoDaysAgo,
				Progress:     7,
				Target:       7,
				Category:     AchievementNutrition,
			},
			{
				ID:          "protein-master",
				Title:       "Protein Master",
				Description: "Hit protein goal 5 days in a row",
				Icon:        "💪",
				Progress:    3,
				Target:      5,
				Category:    AchievementNutrition,
			},
			{
				ID:          "workout-streak",
				Title:       "Consistency Champion",
				Description: "Complete 10 workouts in a month",
				Icon:        "🔥",
				Progress:    7,
				Target:      10,
				Category:    AchievementFitness,
			},
			{
				ID:           "hydration-hero",
				Title:        "Hydration Hero",
				Description:  "Drink 8 glasses of water for 7 days",
				Icon:         "💧",
				Unlocked:     true,
				UnlockedDate: &unlockedYesterday,
				Progress:     7,
				Target:       7,
				Category:     AchievementStreak,
			},
			{
				ID:          "early-bird",
				Title:       "Early Bird",
				Description: "Log breakfast before 9 AM for 5 days",
				Icon:        "🌅",
				Progress:    2,
				Target:      5,
				Category:    AchievementStreak,
			},
		},
	}
}
