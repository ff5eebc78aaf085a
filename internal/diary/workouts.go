package diary

import (
	"context"
	"fmt"
	"math"
	"time"

	"health-insights/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// caloriesPerSecond is a rough burn rate applied to every workout.
const caloriesPerSecond = 4.5

// Template is a workout from the library.
type Template struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Difficulty      string   `json:"difficulty"`
	Calories        string   `json:"calories"`
	Exercises       []string `json:"exercises"`
}

var library = []Template{
	{
		ID:              "cardio",
		Name:            "Cardio Blast",
		DurationMinutes: 20,
		Difficulty:      "Medium",
		Calories:        "200-300",
		Exercises:       []string{"Jumping Jacks", "Burpees", "Mountain Climbers", "High Knees"},
	},
	{
		ID:              "strength",
		Name:            "Strength Training",
		DurationMinutes: 45,
		Difficulty:      "Hard",
		Calories:        "300-450",
		Exercises:       []string{"Push-ups", "Squats", "Lunges", "Plank"},
	},
	{
		ID:              "yoga",
		Name:            "Morning Yoga",
		DurationMinutes: 30,
		Difficulty:      "Easy",
		Calories:        "150-200",
		Exercises:       []string{"Sun Salutation", "Warrior Pose", "Downward Dog", "Child's Pose"},
	},
	{
		ID:              "hiit",
		Name:            "HIIT Workout",
		DurationMinutes: 15,
		Difficulty:      "Hard",
		Calories:        "250-350",
		Exercises:       []string{"Sprint Intervals", "Jump Squats", "Plank Jacks", "Bicycle Crunches"},
	},
}

// Workout is a completed workout.
type Workout struct {
	ID              uuid.UUID `json:"id"`
	TemplateID      string    `json:"templateId"`
	Name            string    `json:"name"`
	DurationSeconds int       `json:"durationSeconds"`
	Calories        int       `json:"calories"`
	CompletedAt     time.Time `json:"completedAt"`
}

// Library returns the workout templates.
func Library() []Template {
	out := make([]Template, len(library))
	for i, t := range library {
		t.Exercises = append([]string(nil), t.Exercises...)
		out[i] = t
	}
	return out
}

func findTemplate(id string) (Template, bool) {
	for _, t := range library {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// CompleteWorkout records a library workout that ran for duration.
// Sub-second remainders are dropped.
func (d *Diary) CompleteWorkout(ctx context.Context, templateID string, duration time.Duration) (Workout, error) {
	if err := ctx.Err(); err != nil {
		return Workout{}, err
	}

	tmpl, ok := findTemplate(templateID)
	if !ok {
		return Workout{}, fmt.Errorf("%w: %q", ErrUnknownWorkout, templateID)
	}

	seconds := int(duration / time.Second)
	if seconds < 1 {
		return Workout{}, ErrInvalidDuration
	}

	w := Workout{
		ID:              uuid.New(),
		TemplateID:      tmpl.ID,
		Name:            tmpl.Name,
		DurationSeconds: seconds,
		Calories:        int(math.Floor(float64(seconds) * caloriesPerSecond)),
		CompletedAt:     d.now(),
	}

	d.mu.Lock()
	d.workouts = append(d.workouts, w)
	d.mu.Unlock()

	d.metrics.Inc(metrics.DiaryWorkoutsCompletedTotal)
	log.WithFields(log.Fields{
		"workout":  w.TemplateID,
		"calories": w.Calories,
	}).Info("workout completed")

	return w, nil
}
