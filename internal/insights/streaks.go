package insights

const (
	MessageOnFire   = "🔥 You're on fire! Your consistency is incredible!"
	MessageAmazing  = "⚡ Amazing streak! You're building powerful habits!"
	MessageMomentum = "🌟 Great momentum! Keep the streak alive!"
	MessageStart    = "💫 Every journey begins with a single step. You've got this!"
)

// CalculateStreakBonus maps a streak length to bonus points. Thresholds are
// checked from the highest down.
func CalculateStreakBonus(streakDays int) int {
	switch {
	case streakDays >= 30:
		return 50
	case streakDays >= 14:
		return 25
	case streakDays >= 7:
		return 10
	case streakDays >= 3:
		return 5
	default:
		return 0
	}
}

// MotivationalMessage picks a message tier from the longest streak.
func MotivationalMessage(streaks Streaks) string {
	maxStreak := streaks.Max()

	switch {
	case maxStreak >= 14:
		return MessageOnFire
	case maxStreak >= 7:
		return MessageAmazing
	case maxStreak >= 3:
		return MessageMomentum
	default:
		return MessageStart
	}
}

// StreakBonuses returns the bonus for every tracked streak.
func StreakBonuses(streaks Streaks) map[string]int {
	return map[string]int{
		"nutrition": CalculateStreakBonus(streaks.Nutrition),
		"workout":   CalculateStreakBonus(streaks.Workout),
		"sleep":     CalculateStreakBonus(streaks.Sleep),
		"water":     CalculateStreakBonus(streaks.Water),
	}
}
