package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func NewRouter(h *Handler, gatherer prometheus.Gatherer, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	// Health data
	r.HandleFunc("/health-data", h.GetHealthData).Methods("GET")
	r.HandleFunc("/health-data", h.PutHealthData).Methods("PUT")
	r.HandleFunc("/goals", h.GetGoals).Methods("GET")
	r.HandleFunc("/goals", h.PutGoals).Methods("PUT")
	r.HandleFunc("/achievements", h.GetAchievements).Methods("GET")

	// Insights
	r.HandleFunc("/recommendations", h.GetRecommendations).Methods("GET")
	r.HandleFunc("/recommendations", h.PostRecommendations).Methods("POST")
	r.HandleFunc("/streaks/bonus/{days}", h.GetStreakBonus).Methods("GET")
	r.HandleFunc("/streaks/motivation", h.GetMotivation).Methods("GET")
	r.HandleFunc("/insights", h.GetInsights).Methods("GET")
	r.HandleFunc("/food/analyze", h.PostFoodAnalyze).Methods("POST")

	// Diary
	r.HandleFunc("/food/log", h.PostFoodLog).Methods("POST")
	r.HandleFunc("/nutrition/today", h.GetNutritionToday).Methods("GET")
	r.HandleFunc("/workouts", h.GetWorkouts).Methods("GET")
	r.HandleFunc("/workouts/{id}/complete", h.PostWorkoutComplete).Methods("POST")

	// Observability APIs
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
	r.HandleFunc("/metrics/json", h.GetMetrics).Methods("GET")
	r.HandleFunc("/status", h.GetStatus).Methods("GET")

	// Admin APIs
	r.HandleFunc("/admin/logs", h.GetLogs).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT"},
		AllowedHeaders: []string{"*"},
	})

	// Middlewares
	return c.Handler(Chain(
		r,
		RecoveryMiddleware(h.metrics),
		LoggingMiddleware,
		MetricsMiddleware(h.metrics),
	))
}
