package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mealtrack-backend/config"
	"mealtrack-backend/internal/foodlog"
	"mealtrack-backend/internal/mealtime"
	"mealtrack-backend/internal/registry"
	"mealtrack-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	foodLogs *foodlog.Service
	policy   *mealtime.Policy
	registry *registry.Registry
	authCfg  config.AuthConfig
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *foodlog.Service, policy *mealtime.Policy, reg *registry.Registry, authCfg config.AuthConfig) *Handler {
	return &Handler{
		store:    s,
		foodLogs: svc,
		policy:   policy,
		registry: reg,
		authCfg:  authCfg,
	}
}

// registrationID canonicalizes the identifier at the system boundary: the
// scanning hardware submits it as either a JSON string or a bare number.
type registrationID string

func (r *registrationID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*r = ""
		return nil
	}
	s = strings.Trim(s, `"`)
	*r = registrationID(s)
	return nil
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// respondError maps core errors onto HTTP statuses with a detail payload.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, foodlog.ErrValidation), errors.Is(err, mealtime.ErrInvalidMealType):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, foodlog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
