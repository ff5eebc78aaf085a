package diary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"health-insights/internal/food"
	"health-insights/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoFoods         = errors.New("analysis has no foods")
	ErrInvalidEntry    = errors.New("invalid food entry")
	ErrUnknownWorkout  = errors.New("unknown workout")
	ErrInvalidDuration = errors.New("workout duration must be at least one second")
)

// DefaultDailyGoals are the daily macro targets used when none are configured.
var DefaultDailyGoals = food.Nutrients{
	Calories: 2000,
	Protein:  120,
	Carbs:    250,
	Fat:      65,
}

type FoodEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	food.Nutrients
	LoggedAt time.Time `json:"loggedAt"`
}

// MacroProgress compares one consumed macro with its daily goal.
type MacroProgress struct {
	Consumed  float64 `json:"consumed"`
	Goal      float64 `json:"goal"`
	Remaining float64 `json:"remaining"`
	Percent   int     `json:"percent"`
}

type DaySummary struct {
	Date           string         `json:"date"`
	Foods          []FoodEntry    `json:"foods"`
	Workouts       []Workout      `json:"workouts"`
	Consumed       food.Nutrients `json:"consumed"`
	Goals          food.Nutrients `json:"goals"`
	Calories       MacroProgress  `json:"calories"`
	Protein        MacroProgress  `json:"protein"`
	Carbs          MacroProgress  `json:"carbs"`
	Fat            MacroProgress  `json:"fat"`
	CaloriesBurned int            `json:"caloriesBurned"`
}

// Diary is an in-memory log of eaten foods and completed workouts.
type Diary struct {
	mu       sync.RWMutex
	foods    []FoodEntry
	workouts []Workout
	goals    food.Nutrients
	metrics  *metrics.Registry
	now      func() time.Time
}

type Option func(*Diary)

func WithClock(now func() time.Time) Option {
	return func(d *Diary) {
		d.now = now
	}
}

func WithDailyGoals(goals food.Nutrients) Option {
	return func(d *Diary) {
		d.goals = goals
	}
}

func New(reg *metrics.Registry, opts ...Option) *Diary {
	d := &Diary{
		goals:   DefaultDailyGoals,
		metrics: reg,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddFoods logs every food of an analysis as a separate entry, all with
// the same timestamp. Nothing is logged if any food is invalid.
func (d *Diary) AddFoods(ctx context.Context, analysis food.Analysis) ([]FoodEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(analysis.Foods) == 0 {
		return nil, ErrNoFoods
	}
	for i, f := range analysis.Foods {
		if err := validateItem(f); err != nil {
			return nil, fmt.Errorf("food %d: %w", i, err)
		}
	}

	loggedAt := d.now()
	entries := make([]FoodEntry, 0, len(analysis.Foods))
	for _, f := range analysis.Foods {
		entries = append(entries, FoodEntry{
			ID:        uuid.New(),
			Name:      f.Name,
			Nutrients: f.Nutrients,
			LoggedAt:  loggedAt,
		})
	}

	d.mu.Lock()
	d.foods = append(d.foods, entries...)
	d.mu.Unlock()

	d.metrics.Add(metrics.DiaryFoodsLoggedTotal, int64(len(entries)))
	log.WithField("foods", len(entries)).Debug("foods logged")

	out := make([]FoodEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Today returns the entries and workouts logged on the current calendar
// day, with consumed totals against the daily goals.
func (d *Diary) Today(ctx context.Context) (*DaySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := d.now()
	summary := &DaySummary{
		Date:     now.Format(time.DateOnly),
		Foods:    []FoodEntry{},
		Workouts: []Workout{},
		Goals:    d.goals,
	}

	d.mu.RLock()
	for _, e := range d.foods {
		if sameDay(e.LoggedAt, now) {
			summary.Foods = append(summary.Foods, e)
		}
	}
	for _, w := range d.workouts {
		if sameDay(w.CompletedAt, now) {
			summary.Workouts = append(summary.Workouts, w)
		}
	}
	d.mu.RUnlock()

	for _, e := range summary.Foods {
		summary.Consumed.Calories += e.Calories
		summary.Consumed.Protein += e.Protein
		summary.Consumed.Carbs += e.Carbs
		summary.Consumed.Fat += e.Fat
	}
	summary.Consumed.Calories = round2(summary.Consumed.Calories)
	summary.Consumed.Protein = round2(summary.Consumed.Protein)
	summary.Consumed.Carbs = round2(summary.Consumed.Carbs)
	summary.Consumed.Fat = round2(summary.Consumed.Fat)

	summary.Calories = progress(summary.Consumed.Calories, d.goals.Calories)
	summary.Protein = progress(summary.Consumed.Protein, d.goals.Protein)
	summary.Carbs = progress(summary.Consumed.Carbs, d.goals.Carbs)
	summary.Fat = progress(summary.Consumed.Fat, d.goals.Fat)

	for _, w := range summary.Workouts {
		summary.CaloriesBurned += w.Calories
	}

	return summary, nil
}

func validateItem(f food.Item) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	}
	for name, v := range map[string]float64{
		"calories": f.Calories,
		"protein":  f.Protein,
		"carbs":    f.Carbs,
		"fat":      f.Fat,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidEntry, name)
		}
	}
	return nil
}

func progress(consumed, goal float64) MacroProgress {
	p := MacroProgress{
		Consumed:  consumed,
		Goal:      goal,
		Remaining: round2(math.Max(goal-consumed, 0)),
	}
	if goal > 0 {
		p.Percent = int(math.Round(consumed / goal * 100))
	}
	return p
}

func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
