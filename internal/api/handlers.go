package api

import (
	"net/http"
	"strconv"
	"time"

	"health-insights/internal/diary"
	"health-insights/internal/food"
	"health-insights/internal/insights"
	"health-insights/internal/logs"
	"health-insights/internal/metrics"
	"health-insights/internal/store"

	"github.com/gorilla/mux"
)

const defaultLogsLimit = 50

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	engine  *insights.Engine
	store   *store.Store
	food    *food.Analyzer
	diary   *diary.Diary
	metrics *metrics.Registry
	logs    *logs.Logger
	started time.Time
	now     func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	engine *insights.Engine,
	store *store.Store,
	analyzer *food.Analyzer,
	foodDiary *diary.Diary,
	metrics *metrics.Registry,
	logger *logs.Logger,
) *Handler {
	return &Handler{
		engine:  engine,
		store:   store,
		food:    analyzer,
		diary:   foodDiary,
		metrics: metrics,
		logs:    logger,
		started: time.Now(),
		now:     time.Now,
	}
}

/* ---------------- GET /health-data ---------------- */

func (h *Handler) GetHealthData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.engine.HealthData(r.Context())
	if err != nil {
		h.writeError(w, "get health data", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

/* ---------------- PUT /health-data ---------------- */

type putHealthDataRequest struct {
	Snapshot   *insights.HealthSnapshot `json:"snapshot"`
	RecordedAt *time.Time               `json:"recordedAt,omitempty"`
}

func (h *Handler) PutHealthData(w http.ResponseWriter, r *http.Request) {
	var req putHealthDataRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Snapshot == nil {
		http.Error(w, "missing snapshot", http.StatusBadRequest)
		return
	}

	recordedAt := h.now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	if err := h.store.SetHealthData(r.Context(), *req.Snapshot, recordedAt); err != nil {
		h.writeError(w, "set health data", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- GET /goals ---------------- */

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.engine.Goals(r.Context())
	if err != nil {
		h.writeError(w, "get goals", err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

/* ---------------- PUT /goals ---------------- */

func (h *Handler) PutGoals(w http.ResponseWriter, r *http.Request) {
	var goals []insights.Goal
	if !decodeJSON(w, r, &goals) {
		return
	}

	if err := h.store.SetGoals(r.Context(), goals); err != nil {
		h.writeError(w, "set goals", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- GET /achievements ---------------- */

func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.engine.Achievements(r.Context())
	if err != nil {
		h.writeError(w, "get achievements", err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

/* ---------------- GET /recommendations ---------------- */

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	// reject a bad filter before doing any work
	category := r.URL.Query().Get("category")
	if _, _, err := insights.ParseCategory(category); err != nil {
		h.writeError(w, "get recommendations", err)
		return
	}

	recs, err := h.engine.Recommendations(r.Context())
	if err != nil {
		h.writeError(w, "get recommendations", err)
		return
	}

	recs, err = insights.FilterByCategory(recs, category)
	if err != nil {
		h.writeError(w, "get recommendations", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

/* ---------------- POST /recommendations ---------------- */

type evaluateRequest struct {
	Snapshot *insights.HealthSnapshot `json:"snapshot"`
	Goals    []insights.Goal          `json:"goals"`
}

func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Snapshot == nil {
		http.Error(w, "missing snapshot", http.StatusBadRequest)
		return
	}

	recs, err := h.engine.Evaluate(*req.Snapshot, req.Goals)
	if err != nil {
		h.writeError(w, "evaluate snapshot", err)
		return
	}

	recs, err = insights.FilterByCategory(recs, r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, "evaluate snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

/* ---------------- GET /streaks/bonus/{days} ---------------- */

func (h *Handler) GetStreakBonus(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(mux.Vars(r)["days"])
	if err != nil || days < 0 {
		http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"days":  days,
		"bonus": insights.CalculateStreakBonus(days),
	})
}

/* ---------------- GET /streaks/motivation ---------------- */

func (h *Handler) GetMotivation(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.engine.HealthData(r.Context())
	if err != nil {
		h.writeError(w, "get motivation", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       insights.MotivationalMessage(snapshot.Streaks),
		"longestStreak": snapshot.Streaks.Max(),
		"bonuses":       insights.StreakBonuses(snapshot.Streaks),
	})
}

/* ---------------- GET /insights ---------------- */

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.Report(r.Context())
	if err != nil {
		h.writeError(w, "build insights report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

/* ---------------- POST /food/analyze ---------------- */

type analyzeFoodRequest struct {
	Image string `json:"image"`
}

func (h *Handler) PostFoodAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeFoodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	analysis, err := h.food.Analyze(r.Context(), req.Image)
	if err != nil {
		h.writeError(w, "analyze food", err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

/* ---------------- POST /food/log ---------------- */

func (h *Handler) PostFoodLog(w http.ResponseWriter, r *http.Request) {
	var analysis food.Analysis
	if !decodeJSON(w, r, &analysis) {
		return
	}

	entries, err := h.diary.AddFoods(r.Context(), analysis)
	if err != nil {
		h.writeError(w, "log foods", err)
		return
	}
	writeJSON(w, http.StatusCreated, entries)
}

/* ---------------- GET /nutrition/today ---------------- */

func (h *Handler) GetNutritionToday(w http.ResponseWriter, r *http.Request) {
	summary, err := h.diary.Today(r.Context())
	if err != nil {
		h.writeError(w, "get today's nutrition", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

/* ---------------- GET /workouts ---------------- */

func (h *Handler) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, diary.Library())
}

/* ---------------- POST /workouts/{id}/complete ---------------- */

type completeWorkoutRequest struct {
	DurationSeconds int `json:"durationSeconds"`
}

func (h *Handler) PostWorkoutComplete(w http.ResponseWriter, r *http.Request) {
	var req completeWorkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	workout, err := h.diary.CompleteWorkout(r.Context(), mux.Vars(r)["id"], time.Duration(req.DurationSeconds)*time.Second)
	if err != nil {
		h.writeError(w, "complete workout", err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

/* ---------------- GET /metrics/json ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics.Snapshot())
}

/* ---------------- GET /admin/logs ---------------- */

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	n := defaultLogsLimit
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	entries := []logs.Entry{}
	if h.logs != nil {
		entries = h.logs.GetLast(n)
	}
	writeJSON(w, http.StatusOK, entries)
}

/* ---------------- GET /status ---------------- */

type statusResponse struct {
	Status         string     `json:"status"`
	Uptime         string     `json:"uptime"`
	HealthDataFrom *time.Time `json:"healthDataRecordedAt,omitempty"`
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status: "ok",
		Uptime: h.now().Sub(h.started).Round(time.Second).String(),
	}
	if last := h.store.LastUpdated(); !last.IsZero() {
		resp.HealthDataFrom = &last
	}
	writeJSON(w, http.StatusOK, resp)
}
