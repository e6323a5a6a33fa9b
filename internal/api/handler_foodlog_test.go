package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mealtrack-backend/config"
	"mealtrack-backend/internal/db"
	"mealtrack-backend/internal/foodlog"
	"mealtrack-backend/internal/model"
	"mealtrack-backend/internal/registry"
	"mealtrack-backend/internal/store"
)

func setupFoodLogRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	svc := foodlog.NewService(s, registry.Default())
	handler := NewHandler(s, svc, nil, registry.Default(), config.AuthConfig{})

	r := gin.Default()
	r.POST("/food-log/update", handler.UpdateFoodLog)
	r.GET("/food-log/search", handler.SearchFoodLogs)
	return r, s
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateThenSearchRoundTrip(t *testing.T) {
	router, s := setupFoodLogRouter(t)

	require.NoError(t, s.DB().Create(&model.Participant{
		RegistrantID: 12345,
		Date:         mustDate(t, "2026-08-28"),
	}).Error)

	w := postJSON(router, "/food-log/update",
		`{"registration_id": "12345", "date": "2026-08-28", "name": "Asha", "lunch": 1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/food-log/search?registrationid=12345&date=2026-08-28", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []model.FoodLog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.NotNil(t, body.Data[0].Lunch)
	assert.Equal(t, 1, *body.Data[0].Lunch)
	assert.Equal(t, "12345", body.Data[0].RegistrationID)
}

func TestUpdateAcceptsNumericRegistrationID(t *testing.T) {
	router, _ := setupFoodLogRouter(t)

	// Scanning hardware sometimes submits the ID as a bare number.
	w := postJSON(router, "/food-log/update",
		`{"registration_id": 12345, "date": "2026-08-28", "lunch": 1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var row model.FoodLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, "12345", row.RegistrationID)
}

func TestUpdateValidation(t *testing.T) {
	router, _ := setupFoodLogRouter(t)

	w := postJSON(router, "/food-log/update", `{"date": "2026-08-28", "lunch": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/food-log/update", `{"registration_id": "12345", "lunch": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/food-log/update", `{"registration_id": "12345", "date": "28/08/2026"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchNoData(t *testing.T) {
	router, s := setupFoodLogRouter(t)

	require.NoError(t, s.DB().Create(&model.Participant{
		RegistrantID: 50002,
		Date:         mustDate(t, "2026-08-28"),
	}).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/food-log/search?registrationid=50002&date=2026-08-28", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detail":"No data found"}`, w.Body.String())
}

func TestSearchUnknownParticipant(t *testing.T) {
	router, _ := setupFoodLogRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/food-log/search?registrationid=99999&date=2026-08-28", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchSpecialReturnsAllScans(t *testing.T) {
	router, _ := setupFoodLogRouter(t)

	for i := 0; i < 3; i++ {
		w := postJSON(router, "/food-log/update",
			`{"registration_id": "FB005-80057860", "date": "2026-08-28", "lunch": 1}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/food-log/search?registrationid=FB005-80057860&date=2026-08-28", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []model.FoodLog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 3)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}
