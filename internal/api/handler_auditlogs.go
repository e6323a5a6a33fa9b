package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mealtrack-backend/internal/foodlog"
	"mealtrack-backend/internal/model"
)

type auditLogUpdateRequest struct {
	RegistrationID  registrationID `json:"registration_id"`
	Date            string         `json:"date"`
	EntityID        int64          `json:"entity_id"`
	EntitlementType string         `json:"entitlement_type"`
	Name            string         `json:"name"`
	Lunch           *int           `json:"lunch"`
	Dinner          *int           `json:"dinner"`
	LunchTakenOn    *time.Time     `json:"lunch_takenon"`
	DinnerTakenOn   *time.Time     `json:"dinner_takenon"`
}

// UpdateAuditLog handles POST /audit-log/update: records or replaces a
// registrant's entitlement state for a calendar date. Repeated updates for
// the same day converge to one row.
func (h *Handler) UpdateAuditLog(c *gin.Context) {
	var req auditLogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	registrantID, err := strconv.ParseInt(string(req.RegistrationID), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid registration ID format. Please provide a valid number."})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	day := foodlog.DateOnly(date)

	row := &model.AuditLog{
		RegistrationID:  registrantID,
		LogDate:         day,
		EntityID:        req.EntityID,
		EntitlementType: req.EntitlementType,
		Name:            req.Name,
		LunchTakenOn:    req.LunchTakenOn,
		DinnerTakenOn:   req.DinnerTakenOn,
	}
	if req.Lunch != nil {
		row.Lunch = *req.Lunch
	}
	if req.Dinner != nil {
		row.Dinner = *req.Dinner
	}

	ctx := c.Request.Context()
	if err := h.store.UpsertAuditLog(ctx, row); err != nil {
		respondError(c, err)
		return
	}
	// Read back the converged row so the caller sees the stored ID whichever
	// branch the conflict clause took.
	stored, err := h.store.AuditLogBySchedule(ctx, registrantID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	if stored == nil {
		stored = row
	}
	c.JSON(http.StatusOK, stored)
}

// SearchAuditLogs handles GET /audit-log/search?registrationid=&date=.
func (h *Handler) SearchAuditLogs(c *gin.Context) {
	registrantID, err := strconv.ParseInt(c.Query("registrationid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid registration ID format. Please provide a valid number."})
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	row, err := h.store.AuditLogBySchedule(c.Request.Context(), registrantID, foodlog.DateOnly(date))
	if err != nil {
		respondError(c, err)
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No audit logs found"})
		return
	}
	c.JSON(http.StatusOK, []model.AuditLog{*row})
}

// AuditLogsByEntity handles GET /audit-log/by-entity/:entity_id.
func (h *Handler) AuditLogsByEntity(c *gin.Context) {
	entityID, err := strconv.ParseInt(c.Param("entity_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid entity ID format. Please provide a valid number."})
		return
	}

	rows, err := h.store.AuditLogsByEntity(c.Request.Context(), entityID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("No audit logs found for entity ID: %d", entityID)})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AuditLogsByRegistration handles GET /audit-log/by-registration/:registration_id.
func (h *Handler) AuditLogsByRegistration(c *gin.Context) {
	registrantID, err := strconv.ParseInt(c.Param("registration_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid registration ID format. Please provide a valid number."})
		return
	}

	rows, err := h.store.AuditLogsByRegistration(c.Request.Context(), registrantID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("No audit logs found for registration ID: %d", registrantID)})
		return
	}
	c.JSON(http.StatusOK, rows)
}
