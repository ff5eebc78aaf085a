package metrics

import (
	"strings"
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Engine
	EvaluationsTotal      MetricKey = "insights_evaluations_total"
	RecommendationsTotal  MetricKey = "insights_recommendations_total"
	InvalidSnapshotsTotal MetricKey = "insights_invalid_snapshots_total"
	ReportsTotal          MetricKey = "insights_reports_total"

	// Store
	StoreSnapshotWritesTotal   MetricKey = "store_snapshot_writes_total"
	StoreSnapshotRejectedTotal MetricKey = "store_snapshot_rejected_total"
	StoreGoalWritesTotal       MetricKey = "store_goal_writes_total"
	StoreReadsTotal            MetricKey = "store_reads_total"

	// Food recognition
	FoodAnalysesTotal       MetricKey = "food_analyses_total"
	FoodAnalysisErrorsTotal MetricKey = "food_analysis_errors_total"
	FoodItemsDetectedTotal  MetricKey = "food_items_detected_total"

	// Diary
	DiaryFoodsLoggedTotal       MetricKey = "diary_foods_logged_total"
	DiaryWorkoutsCompletedTotal MetricKey = "diary_workouts_completed_total"

	// HTTP
	HTTPRequestsTotal MetricKey = "http_requests_total"
	HTTPPanicsTotal   MetricKey = "http_panics_total"
	HTTPErrorsTotal   MetricKey = "http_errors_total"
)

// RuleKey returns the per-rule counter key for a recommendation id.
// Dashes become underscores so the key is a valid prometheus name.
func RuleKey(recommendationID string) MetricKey {
	return MetricKey("insights_rule_" + strings.ReplaceAll(recommendationID, "-", "_") + "_total")
}

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	if r == nil {
		return
	}

	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	var val int64
	r.counters[key] = &val
	atomic.AddInt64(&val, delta)
}

// Get returns the current value of a single metric, 0 if unset.
func (r *Registry) Get(key MetricKey) int64 {
	if r == nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ptr, ok := r.counters[key]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(ptr)
}
