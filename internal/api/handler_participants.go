package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mealtrack-backend/internal/foodlog"
)

// SearchParticipant handles GET /participants/search?registrationid=&date=.
// Participants are created by an external registration workflow; this is a
// read-only lookup.
func (h *Handler) SearchParticipant(c *gin.Context) {
	registrantID, err := strconv.ParseInt(c.Query("registrationid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid registration ID format. Please provide a valid number."})
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format. Please use YYYY-MM-DD format."})
		return
	}

	row, err := h.store.ParticipantBySchedule(c.Request.Context(), registrantID, foodlog.DateOnly(date))
	if err != nil {
		respondError(c, err)
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Data not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userid":          row.ID,
		"name":            row.ParticipantType,
		"registration_id": row.RegistrantID,
		"date":            row.Date,
	})
}

// ListParticipants handles GET /participants.
func (h *Handler) ListParticipants(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	rows, err := h.store.ListParticipants(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
