package insights

import "time"

type Nutrition struct {
	DailyCalories float64 `json:"dailyCalories" yaml:"dailyCalories"`
	Protein       float64 `json:"protein" yaml:"protein"`
	Carbs         float64 `json:"carbs" yaml:"carbs"`
	Fat           float64 `json:"fat" yaml:"fat"`
	// Water is counted in glasses.
	Water float64 `json:"water" yaml:"water"`
}

type Activity struct {
	Steps            int    `json:"steps" yaml:"steps"`
	ActiveMinutes    int    `json:"activeMinutes" yaml:"activeMinutes"`
	WorkoutsThisWeek int    `json:"workoutsThisWeek" yaml:"workoutsThisWeek"`
	LastWorkoutType  string `json:"lastWorkoutType" yaml:"lastWorkoutType"`
}

type Sleep struct {
	AverageHours float64 `json:"averageHours" yaml:"averageHours"`
	// Quality is a 0-100 score.
	Quality float64 `json:"quality" yaml:"quality"`
}

// Streaks holds consecutive qualifying days per tracked habit.
type Streaks struct {
	Nutrition int `json:"nutrition" yaml:"nutrition"`
	Workout   int `json:"workout" yaml:"workout"`
	Sleep     int `json:"sleep" yaml:"sleep"`
	Water     int `json:"water" yaml:"water"`
}

// Max returns the longest of the four streaks.
func (s Streaks) Max() int {
	return max(s.Nutrition, s.Workout, s.Sleep, s.Water)
}

// HealthSnapshot is a point-in-time bundle of health metrics.
type HealthSnapshot struct {
	Nutrition Nutrition `json:"nutrition" yaml:"nutrition"`
	Activity  Activity  `json:"activity" yaml:"activity"`
	Sleep     Sleep     `json:"sleep" yaml:"sleep"`
	Streaks   Streaks   `json:"streaks" yaml:"streaks"`
}

type GoalType string

const (
	GoalWeightLoss    GoalType = "weight_loss"
	GoalMuscleGain    GoalType = "muscle_gain"
	GoalEndurance     GoalType = "endurance"
	GoalGeneralHealth GoalType = "general_health"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Goal struct {
	ID       string    `json:"id" yaml:"id"`
	Type     GoalType  `json:"type" yaml:"type"`
	Target   float64   `json:"target" yaml:"target"`
	Current  float64   `json:"current" yaml:"current"`
	Unit     string    `json:"unit" yaml:"unit"`
	Deadline time.Time `json:"deadline" yaml:"deadline"`
	Priority Priority  `json:"priority" yaml:"priority"`
}

type Category string

const (
	CategoryNutrition Category = "nutrition"
	CategoryExercise  Category = "exercise"
	CategorySleep     Category = "sleep"
	CategoryHydration Category = "hydration"
	CategoryRecovery  Category = "recovery"
)

var categories = []Category{
	CategoryNutrition,
	CategoryExercise,
	CategorySleep,
	CategoryHydration,
	CategoryRecovery,
}

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

// Recommendation is an actionable suggestion produced by a single rule.
type Recommendation struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Impact      Impact     `json:"impact"`
	Difficulty  Difficulty `json:"difficulty"`
	Timeframe   string     `json:"timeframe"`
	ActionSteps []string   `json:"actionSteps"`
	Reasoning   string     `json:"reasoning"`
	RelatedGoal string     `json:"relatedGoal,omitempty"`
}

type AchievementCategory string

const (
	AchievementNutrition AchievementCategory = "nutrition"
	AchievementFitness   AchievementCategory = "fitness"
	AchievementStreak    AchievementCategory = "streak"
	AchievementMilestone AchievementCategory = "milestone"
)

type Achievement struct {
	ID           string              `json:"id" yaml:"id"`
	Title        string              `json:"title" yaml:"title"`
	Description  string              `json:"description" yaml:"description"`
	Icon         string              `json:"icon" yaml:"icon"`
	Unlocked     bool                `json:"unlocked" yaml:"unlocked"`
	UnlockedDate *time.Time          `json:"unlockedDate,omitempty" yaml:"unlockedDate,omitempty"`
	Progress     int                 `json:"progress" yaml:"progress"`
	Target       int                 `json:"target" yaml:"target"`
	Category     AchievementCategory `json:"category" yaml:"category"`
}

// Completion is Progress/Target clamped to [0, 1].
func (a Achievement) Completion() float64 {
	if a.Target <= 0 {
		if a.Unlocked {
			return 1
		}
		return 0
	}
	return clamp01(float64(a.Progress) / float64(a.Target))
}

// Dataset is everything a data source serves: the snapshot, the user's goals
// and the achievement catalog.
type Dataset struct {
	HealthData   HealthSnapshot `json:"healthData" yaml:"healthData"`
	Goals        []Goal         `json:"goals" yaml:"goals"`
	Achievements []Achievement  `json:"achievements" yaml:"achievements"`
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
