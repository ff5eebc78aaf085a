package insights

import (
	"context"
	"fmt"
	"time"

	"health-insights/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=insights_test

// DataSource supplies the snapshot, goals and achievement catalog the
// engine works on.
type DataSource interface {
	HealthData(ctx context.Context) (HealthSnapshot, error)
	Goals(ctx context.Context) ([]Goal, error)
	Achievements(ctx context.Context) ([]Achievement, error)
}

// Engine evaluates health snapshots into recommendations.
type Engine struct {
	data    DataSource
	metrics *metrics.Registry
	rules   []Rule
	now     func() time.Time
}

type EngineOption func(*Engine)

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) EngineOption {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithClock sets the time source used for report timestamps and goal deadlines.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine.
func NewEngine(
	data DataSource,
	reg *metrics.Registry,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		data:    data,
		metrics: reg,
		rules:   DefaultRules(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateRecommendations runs the default rules over the snapshot. It is a
// pure function: the same input always yields the same ordered output.
func GenerateRecommendations(snapshot HealthSnapshot, goals []Goal) []Recommendation {
	return runRules(DefaultRules(), snapshot, goals)
}

func runRules(rules []Rule, snapshot HealthSnapshot, goals []Goal) []Recommendation {
	recommendations := []Recommendation{}
	seen := make(map[string]bool, len(rules))

	for _, rule := range rules {
		result := rule(snapshot, goals)
		if !result.Triggered {
			continue
		}

		// ids are unique per batch, first rule wins
		id := result.Recommendation.ID
		if seen[id] {
			continue
		}
		seen[id] = true

		recommendations = append(recommendations, result.Recommendation)
	}

	return recommendations
}

// Evaluate validates the input and returns the recommendations for it.
func (e *Engine) Evaluate(snapshot HealthSnapshot, goals []Goal) ([]Recommendation, error) {
	if err := Validate(snapshot); err != nil {
		e.metrics.Inc(metrics.InvalidSnapshotsTotal)
		return nil, err
	}
	if err := ValidateGoals(goals); err != nil {
		return nil, err
	}

	recommendations := runRules(e.rules, snapshot, goals)

	e.metrics.Inc(metrics.EvaluationsTotal)
	e.metrics.Add(metrics.RecommendationsTotal, int64(len(recommendations)))
	for _, r := range recommendations {
		e.metrics.Inc(metrics.RuleKey(r.ID))
	}

	log.WithField("recommendations", len(recommendations)).Debug("snapshot evaluated")

	return recommendations, nil
}

// Recommendations evaluates the data source's current snapshot and goals.
func (e *Engine) Recommendations(ctx context.Context) ([]Recommendation, error) {
	snapshot, err := e.data.HealthData(ctx)
	if err != nil {
		return nil, fmt.Errorf("get health data: %w", err)
	}
	goals, err := e.data.Goals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	return e.Evaluate(snapshot, goals)
}

func (e *Engine) HealthData(ctx context.Context) (HealthSnapshot, error) {
	return e.data.HealthData(ctx)
}

func (e *Engine) Goals(ctx context.Context) ([]Goal, error) {
	return e.data.Goals(ctx)
}

func (e *Engine) Achievements(ctx context.Context) ([]Achievement, error) {
	return e.data.Achievements(ctx)
}

// Report is the full insights payload for one evaluation.
type Report struct {
	ID                   uuid.UUID        `json:"id"`
	GeneratedAt          time.Time        `json:"generatedAt"`
	Recommendations      []Recommendation `json:"recommendations"`
	Goals                []GoalProgress   `json:"goals"`
	StreakBonuses        map[string]int   `json:"streakBonuses"`
	TotalStreakBonus     int              `json:"totalStreakBonus"`
	MotivationalMessage  string           `json:"motivationalMessage"`
	Achievements         []Achievement    `json:"achievements"`
	UnlockedAchievements int              `json:"unlockedAchievements"`
}

// Report builds the insights report from the data source.
func (e *Engine) Report(ctx context.Context) (*Report, error) {
	snapshot, err := e.data.HealthData(ctx)
	if err != nil {
		return nil, fmt.Errorf("get health data: %w", err)
	}
	goals, err := e.data.Goals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	achievements, err := e.data.Achievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("get achievements: %w", err)
	}

	recommendations, err := e.Evaluate(snapshot, goals)
	if err != nil {
		return nil, err
	}

	bonuses := StreakBonuses(snapshot.Streaks)
	total := 0
	for _, b := range bonuses {
		total += b
	}

	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	report := &Report{
		ID:                   uuid.New(),
		GeneratedAt:          e.now().UTC(),
		Recommendations:      recommendations,
		Goals:                goalsProgress(goals, e.now()),
		StreakBonuses:        bonuses,
		TotalStreakBonus:     total,
		MotivationalMessage:  MotivationalMessage(snapshot.Streaks),
		Achievements:         achievements,
		UnlockedAchievements: unlocked,
	}

	e.metrics.Inc(metrics.ReportsTotal)
	log.WithFields(log.Fields{
		"report_id":       report.ID.String(),
		"recommendations": len(recommendations),
		"streak_bonus":    total,
	}).Info("insights report generated")

	return report, nil
}
