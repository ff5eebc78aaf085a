package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"health-insights/internal/insights"
	"health-insights/internal/metrics"

	log "github.com/sirupsen/logrus"
)

var ErrStaleSnapshot = errors.New("snapshot is older than the stored one")

// Store is a concurrency-safe in-memory insights.DataSource.
//
// Design principles:
// - Safe for concurrent access using RWMutex
// - Health data uses Last-Write-Wins (LWW) on the recorded time
// - Readers always get copies, never the stored slices
type Store struct {
	mu           sync.RWMutex
	health       snapshotEntry
	goals        []insights.Goal
	achievements []insights.Achievement
	metrics      *metrics.Registry
}

// NewStore initializes a Store holding the given dataset.
func NewStore(metricsRegistry *metrics.Registry, seed insights.Dataset) *Store {
	return &Store{
		health:       snapshotEntry{Snapshot: seed.HealthData},
		goals:        copyGoals(seed.Goals),
		achievements: copyAchievements(seed.Achievements),
		metrics:      metricsRegistry,
	}
}

func (s *Store) HealthData(ctx context.Context) (insights.HealthSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return insights.HealthSnapshot{}, err
	}
	s.metrics.Inc(metrics.StoreReadsTotal)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.health.Snapshot, nil
}

func (s *Store) Goals(ctx context.Context) ([]insights.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.metrics.Inc(metrics.StoreReadsTotal)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyGoals(s.goals), nil
}

func (s *Store) Achievements(ctx context.Context) ([]insights.Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.metrics.Inc(metrics.StoreReadsTotal)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyAchievements(s.achievements), nil
}

// SetHealthData replaces the snapshot using Last-Write-Wins semantics.
//
// Rules:
// - The snapshot must pass insights.Validate.
// - It is stored only if recordedAt is newer than the stored snapshot's,
//   otherwise ErrStaleSnapshot is returned.
func (s *Store) SetHealthData(ctx context.Context, snapshot insights.HealthSnapshot, recordedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := insights.Validate(snapshot); err != nil {
		s.metrics.Inc(metrics.StoreSnapshotRejectedTotal)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.health.supersededBy(recordedAt) {
		s.metrics.Inc(metrics.StoreSnapshotRejectedTotal)
		log.WithFields(log.Fields{
			"recorded_at": recordedAt,
			"stored_at":   s.health.RecordedAt,
		}).Warn("stale health snapshot rejected")
		return fmt.Errorf("%w: recorded at %s", ErrStaleSnapshot, recordedAt.Format(time.RFC3339Nano))
	}

	s.health = snapshotEntry{Snapshot: snapshot, RecordedAt: recordedAt}
	s.metrics.Inc(metrics.StoreSnapshotWritesTotal)

	return nil
}

// SetGoals replaces the whole goal list.
func (s *Store) SetGoals(ctx context.Context, goals []insights.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := insights.ValidateGoals(goals); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = copyGoals(goals)
	s.metrics.Inc(metrics.StoreGoalWritesTotal)

	return nil
}

// LastUpdated returns when the current snapshot was recorded; zero for seed data.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.health.RecordedAt
}

func copyGoals(goals []insights.Goal) []insights.Goal {
	out := make([]insights.Goal, len(goals))
	copy(out, goals)
	return out
}

func copyAchievements(achievements []insights.Achievement) []insights.Achievement {
	out := make([]insights.Achievement, len(achievements))
	for i, a := range achievements {
		if a.UnlockedDate != nil {
			d := *a.UnlockedDate
			a.UnlockedDate = &d
		}
		out[i] = a
	}
	return out
}
