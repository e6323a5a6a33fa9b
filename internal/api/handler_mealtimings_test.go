package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealtrack-backend/config"
	"mealtrack-backend/internal/mealtime"
)

func setupMealTimingsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	policy, err := mealtime.NewPolicy(config.MealsConfig{
		Lunch:          config.MealWindowConfig{StartTime: "12:00", EndTime: "15:00"},
		Dinner:         config.MealWindowConfig{StartTime: "19:00", EndTime: "22:30"},
		EarlyThreshold: 30,
		LateThreshold:  30,
	})
	require.NoError(t, err)

	handler := NewHandler(nil, nil, policy, nil, config.AuthConfig{})
	r := gin.Default()
	r.GET("/meal-timings/timings", handler.GetMealTimings)
	r.GET("/meal-timings/classify", handler.ClassifyScan)
	return r
}

func TestGetMealTimings(t *testing.T) {
	router := setupMealTimingsRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meal-timings/timings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "12:00 PM", body["lunch"]["start_time"])
	assert.Equal(t, "03:00 PM", body["lunch"]["end_time"])
	assert.Equal(t, "07:00 PM", body["dinner"]["start_time"])
	assert.Equal(t, "10:30 PM", body["dinner"]["end_time"])
}

func TestClassifyScan(t *testing.T) {
	router := setupMealTimingsRouter(t)

	testCases := []struct {
		name           string
		query          string
		expectedCode   int
		expectedStatus string
	}{
		{"on time at window end", "meal_type=lunch&scan_time=2026-08-28T15:00:00Z", http.StatusOK, "on_time"},
		{"late past threshold", "meal_type=lunch&scan_time=2026-08-28T15:31:00Z", http.StatusOK, "late"},
		{"early before threshold", "meal_type=dinner&scan_time=2026-08-28T17:00:00Z", http.StatusOK, "early"},
		{"invalid meal type", "meal_type=breakfast&scan_time=2026-08-28T09:00:00Z", http.StatusBadRequest, ""},
		{"invalid scan time", "meal_type=lunch&scan_time=yesterday", http.StatusBadRequest, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/meal-timings/classify?"+tc.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedCode, w.Code)
			if tc.expectedStatus != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tc.expectedStatus, body["status"])
			}
		})
	}
}
