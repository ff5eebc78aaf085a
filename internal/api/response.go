package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"health-insights/internal/diary"
	"health-insights/internal/food"
	"health-insights/internal/insights"
	"health-insights/internal/metrics"
	"health-insights/internal/store"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 8 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("write json response: %s", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, insights.ErrInvalidSnapshot),
		errors.Is(err, insights.ErrInvalidGoal),
		errors.Is(err, insights.ErrUnknownCategory),
		errors.Is(err, food.ErrEmptyImage),
		errors.Is(err, food.ErrInvalidImage),
		errors.Is(err, diary.ErrNoFoods),
		errors.Is(err, diary.ErrInvalidEntry),
		errors.Is(err, diary.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, diary.ErrUnknownWorkout):
		return http.StatusNotFound
	case errors.Is(err, store.ErrStaleSnapshot):
		return http.StatusConflict
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	h.metrics.Inc(metrics.HTTPErrorsTotal)

	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal server error", status)
		return
	}

	log.Debugf("%s: %s", op, err)
	http.Error(w, err.Error(), status)
}
