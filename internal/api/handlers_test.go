package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"health-insights/internal/diary"
	"health-insights/internal/food"
	"health-insights/internal/insights"
	"health-insights/internal/logs"
	"health-insights/internal/metrics"
	"health-insights/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	store   *store.Store
	metrics *metrics.Registry
	logs    *logs.Logger
}

func setUpTestServer(t *testing.T) *testServer {
	t.Helper()

	reg := metrics.NewRegistry()
	logger := logs.NewLogger(50, logs.DEBUG)
	st := store.NewStore(reg, insights.SampleData(testNow))
	engine := insights.NewEngine(st, reg, insights.WithClock(func() time.Time { return testNow }))
	analyzer := food.NewAnalyzer(rand.New(rand.NewSource(1)), reg)

	foodDiary := diary.New(reg, diary.WithClock(func() time.Time { return testNow }))

	h := NewHandler(engine, st, analyzer, foodDiary, reg, logger)
	h.now = func() time.Time { return testNow }
	h.started = testNow.Add(-time.Hour)

	return &testServer{
		handler: NewRouter(h, metrics.SetupPrometheus(reg), []string{"*"}),
		store:   st,
		metrics: reg,
		logs:    logger,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(v))
}

func recommendationIDs(recs []insights.Recommendation) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return ids
}

/* ---------------- /health-data ---------------- */

func TestHealthData(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("Get", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/health-data", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var snapshot insights.HealthSnapshot
		decode(t, rr, &snapshot)
		assert.Equal(t, insights.SampleData(testNow).HealthData, snapshot)
	})

	t.Run("PutValid", func(t *testing.T) {
		body := `{"snapshot":{"nutrition":{"protein":150,"water":10},"sleep":{"averageHours":8,"quality":90},"activity":{"workoutsThisWeek":5}},"recordedAt":"2024-06-01T09:00:00Z"}`
		rr := s.do(t, http.MethodPut, "/health-data", body)
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = s.do(t, http.MethodGet, "/recommendations", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var recs []insights.Recommendation
		decode(t, rr, &recs)
		assert.Equal(t, []string{"recovery-focus"}, recommendationIDs(recs))
	})

	t.Run("PutStale", func(t *testing.T) {
		body := `{"snapshot":{"nutrition":{"protein":10}},"recordedAt":"2024-06-01T08:30:00Z"}`
		rr := s.do(t, http.MethodPut, "/health-data", body)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("PutInvalidSnapshot", func(t *testing.T) {
		body := `{"snapshot":{"sleep":{"averageHours":-1}},"recordedAt":"2024-06-02T00:00:00Z"}`
		rr := s.do(t, http.MethodPut, "/health-data", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "sleep.averageHours")
	})

	t.Run("PutMissingSnapshot", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/health-data", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("PutInvalidJSON", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/health-data", `{bad-json`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

/* ---------------- /goals, /achievements ---------------- */

func TestGoals(t *testing.T) {
	s := setUpTestServer(t)

	rr := s.do(t, http.MethodGet, "/goals", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var goals []insights.Goal
	decode(t, rr, &goals)
	require.Len(t, goals, 2)
	assert.Equal(t, insights.GoalWeightLoss, goals[0].Type)

	t.Run("PutValid", func(t *testing.T) {
		body := `[{"id":"run","type":"endurance","target":10,"current":4,"unit":"km","priority":"low"}]`
		rr := s.do(t, http.MethodPut, "/goals", body)
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = s.do(t, http.MethodGet, "/goals", "")
		var goals []insights.Goal
		decode(t, rr, &goals)
		require.Len(t, goals, 1)
		assert.Equal(t, "run", goals[0].ID)
	})

	t.Run("PutInvalid", func(t *testing.T) {
		body := `[{"id":"run","type":"sprinting","target":10,"priority":"low"}]`
		rr := s.do(t, http.MethodPut, "/goals", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAchievements(t *testing.T) {
	s := setUpTestServer(t)

	rr := s.do(t, http.MethodGet, "/achievements", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var achievements []insights.Achievement
	decode(t, rr, &achievements)
	require.Len(t, achievements, 5)
	assert.Equal(t, "first-week", achievements[0].ID)
	assert.True(t, achievements[0].Unlocked)
	require.NotNil(t, achievements[0].UnlockedDate)
	assert.Nil(t, achievements[1].UnlockedDate)
}

/* ---------------- /recommendations ---------------- */

func TestGetRecommendations(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("All", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recommendations", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var recs []insights.Recommendation
		decode(t, rr, &recs)
		assert.Equal(t,
			[]string{"protein-boost", "sleep-optimization", "workout-frequency", "hydration-boost", "recovery-focus"},
			recommendationIDs(recs),
		)
		assert.Equal(t, "2", recs[0].RelatedGoal)
	})

	t.Run("Category", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recommendations?category=hydration", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var recs []insights.Recommendation
		decode(t, rr, &recs)
		assert.Equal(t, []string{"hydration-boost"}, recommendationIDs(recs))
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recommendations?category=yoga", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("RelatedGoalOmitted", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/recommendations", `{"snapshot":{}}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "relatedGoal")
	})
}

func TestPostRecommendations(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("Evaluate", func(t *testing.T) {
		body := `{"snapshot":{"nutrition":{"protein":60,"water":9},"sleep":{"averageHours":6.9},"activity":{"workoutsThisWeek":4}},` +
			`"goals":[{"id":"m","type":"muscle_gain","target":120,"current":60,"priority":"high"}]}`
		rr := s.do(t, http.MethodPost, "/recommendations", body)
		require.Equal(t, http.StatusOK, rr.Code)

		var recs []insights.Recommendation
		decode(t, rr, &recs)
		assert.Equal(t, []string{"protein-boost", "sleep-optimization", "recovery-focus"}, recommendationIDs(recs))
		assert.Equal(t, "m", recs[0].RelatedGoal)
		assert.Contains(t, recs[0].Description, "You're 40g below")
	})

	t.Run("InvalidSnapshot", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/recommendations", `{"snapshot":{"sleep":{"quality":120}}}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, int64(1), s.metrics.Get(metrics.InvalidSnapshotsTotal))
	})

	t.Run("MissingSnapshot", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/recommendations", `{"goals":[]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("DoesNotTouchStore", func(t *testing.T) {
		assert.True(t, s.store.LastUpdated().IsZero())
	})
}

/* ---------------- /streaks ---------------- */

func TestStreaks(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("Bonus", func(t *testing.T) {
		cases := map[string]int{"29": 25, "30": 50, "0": 0, "7": 10}
		for days, want := range cases {
			rr := s.do(t, http.MethodGet, "/streaks/bonus/"+days, "")
			require.Equal(t, http.StatusOK, rr.Code)

			var resp map[string]int
			decode(t, rr, &resp)
			assert.Equal(t, want, resp["bonus"], "days=%s", days)
		}
	})

	t.Run("BonusNotANumber", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/streaks/bonus/ten", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("BonusNegative", func(t *testing.T) {
		for _, days := range []string{"-1", "-4"} {
			rr := s.do(t, http.MethodGet, "/streaks/bonus/"+days, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, "days=%s", days)
			assert.Contains(t, rr.Body.String(), "non-negative")
		}
	})

	t.Run("Motivation", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/streaks/motivation", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Message       string         `json:"message"`
			LongestStreak int            `json:"longestStreak"`
			Bonuses       map[string]int `json:"bonuses"`
		}
		decode(t, rr, &resp)
		assert.Equal(t, insights.MessageAmazing, resp.Message)
		assert.Equal(t, 7, resp.LongestStreak)
		assert.Equal(t, 10, resp.Bonuses["water"])
	})
}

/* ---------------- /insights ---------------- */

func TestGetInsights(t *testing.T) {
	s := setUpTestServer(t)

	rr := s.do(t, http.MethodGet, "/insights", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var report insights.Report
	decode(t, rr, &report)
	assert.Len(t, report.Recommendations, 5)
	assert.Equal(t, 20, report.TotalStreakBonus)
	assert.Equal(t, 2, report.UnlockedAchievements)
	assert.Equal(t, insights.MessageAmazing, report.MotivationalMessage)
	assert.Equal(t, testNow, report.GeneratedAt)
	require.Len(t, report.Goals, 2)
	assert.Equal(t, 0.68, report.Goals[1].Completion)
	assert.Equal(t, int64(1), s.metrics.Get(metrics.ReportsTotal))
}

/* ---------------- /food/analyze ---------------- */

func TestPostFoodAnalyze(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("Valid", func(t *testing.T) {
		image := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
		body, _ := json.Marshal(map[string]string{"image": image})

		rr := s.do(t, http.MethodPost, "/food/analyze", string(body))
		require.Equal(t, http.StatusOK, rr.Code)

		var analysis food.Analysis
		decode(t, rr, &analysis)
		assert.NotEmpty(t, analysis.Foods)
		assert.LessOrEqual(t, len(analysis.Foods), 3)
		assert.Positive(t, analysis.TotalCalories)
	})

	t.Run("EmptyImage", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/food/analyze", `{"image":""}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidImage", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/food/analyze", `{"image":"%%%"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

/* ---------------- diary ---------------- */

func TestFoodLog(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("EmptyDay", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/nutrition/today", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var summary diary.DaySummary
		decode(t, rr, &summary)
		assert.Equal(t, "2024-06-01", summary.Date)
		assert.Empty(t, summary.Foods)
		assert.Equal(t, diary.DefaultDailyGoals, summary.Goals)
	})

	t.Run("LogAnalysis", func(t *testing.T) {
		body := `{"foods":[
			{"name":"Salmon Fillet","calories":206,"protein":22,"carbs":0,"fat":12,"confidence":0.91},
			{"name":"Mixed Green Salad","calories":20,"protein":1.5,"carbs":4,"fat":0.2,"confidence":0.88}
		],"totalCalories":226,"totalProtein":23.5,"totalCarbs":4,"totalFat":12.2}`

		rr := s.do(t, http.MethodPost, "/food/log", body)
		require.Equal(t, http.StatusCreated, rr.Code)

		var entries []diary.FoodEntry
		decode(t, rr, &entries)
		require.Len(t, entries, 2)
		assert.Equal(t, "Salmon Fillet", entries[0].Name)
		assert.Equal(t, testNow, entries[0].LoggedAt)

		rr = s.do(t, http.MethodGet, "/nutrition/today", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var summary diary.DaySummary
		decode(t, rr, &summary)
		require.Len(t, summary.Foods, 2)
		assert.Equal(t, food.Nutrients{Calories: 226, Protein: 23.5, Carbs: 4, Fat: 12.2}, summary.Consumed)
		assert.Equal(t, 11, summary.Calories.Percent)
		assert.Equal(t, 20, summary.Protein.Percent)
		assert.Equal(t, 96.5, summary.Protein.Remaining)
		assert.Equal(t, int64(2), s.metrics.Get(metrics.DiaryFoodsLoggedTotal))
	})

	t.Run("NoFoods", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/food/log", `{"foods":[]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidFood", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/food/log", `{"foods":[{"name":"Egg","calories":-70}]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/food/log", `{"foods":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestWorkouts(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("Library", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/workouts", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var lib []diary.Template
		decode(t, rr, &lib)
		require.Len(t, lib, 4)
		assert.Equal(t, "Cardio Blast", lib[0].Name)
	})

	t.Run("Complete", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/workouts/strength/complete", `{"durationSeconds":2701}`)
		require.Equal(t, http.StatusCreated, rr.Code)

		var workout diary.Workout
		decode(t, rr, &workout)
		assert.Equal(t, "Strength Training", workout.Name)
		assert.Equal(t, 12154, workout.Calories)

		rr = s.do(t, http.MethodGet, "/nutrition/today", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var summary diary.DaySummary
		decode(t, rr, &summary)
		require.Len(t, summary.Workouts, 1)
		assert.Equal(t, 12154, summary.CaloriesBurned)
	})

	t.Run("UnknownWorkout", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/workouts/pilates/complete", `{"durationSeconds":60}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("ZeroDuration", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/workouts/yoga/complete", `{"durationSeconds":0}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

/* ---------------- observability ---------------- */

func TestGetMetrics(t *testing.T) {
	s := setUpTestServer(t)
	s.do(t, http.MethodGet, "/recommendations", "")

	t.Run("JSON", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/metrics/json", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var data map[string]int64
		decode(t, rr, &data)
		assert.Equal(t, int64(1), data[string(metrics.EvaluationsTotal)])
		assert.GreaterOrEqual(t, data[string(metrics.HTTPRequestsTotal)], int64(2))
	})

	t.Run("Prometheus", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "health_insights_insights_evaluations_total 1")
		assert.Contains(t, rr.Body.String(), "go_goroutines")
	})
}

func TestGetLogs(t *testing.T) {
	s := setUpTestServer(t)

	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)
	l.AddHook(s.logs)
	l.Info("first")
	l.Warn("second")
	l.Error("third")

	t.Run("LastN", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/admin/logs?n=2", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []logs.Entry
		decode(t, rr, &entries)
		require.Len(t, entries, 2)
		assert.Equal(t, "second", entries[0].Message)
		assert.Equal(t, logs.ERROR, entries[1].Level)
	})

	t.Run("Default", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/admin/logs", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []logs.Entry
		decode(t, rr, &entries)
		assert.Len(t, entries, 3)
	})

	t.Run("BadN", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/admin/logs?n=-1", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetStatus(t *testing.T) {
	s := setUpTestServer(t)

	rr := s.do(t, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "healthDataRecordedAt")

	rr = s.do(t, http.MethodPut, "/health-data", `{"snapshot":{}}`)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(t, http.MethodGet, "/status", "")
	var resp statusResponse
	decode(t, rr, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1h0m0s", resp.Uptime)
	require.NotNil(t, resp.HealthDataFrom)
	assert.Equal(t, testNow, resp.HealthDataFrom.UTC())
}

/* ---------------- Route validation ---------------- */

func TestRouteValidation(t *testing.T) {
	s := setUpTestServer(t)

	t.Run("MethodNotAllowed", func(t *testing.T) {
		rr := s.do(t, http.MethodDelete, "/goals", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/kv/key1", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("CORS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rr := httptest.NewRecorder()
		s.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("BodyTooLarge", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), maxBodyBytes+10)
		body := `{"image":"` + string(big) + `"}`
		rr := s.do(t, http.MethodPost, "/food/analyze", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
