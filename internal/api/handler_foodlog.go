package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mealtrack-backend/internal/foodlog"
)

type foodLogUpdateRequest struct {
	RegistrationID registrationID `json:"registration_id"`
	Date           string         `json:"date"`
	Name           string         `json:"name"`
	Lunch          *int           `json:"lunch"`
	Dinner         *int           `json:"dinner"`
	LunchTakenOn   *time.Time     `json:"lunch_takenon"`
	DinnerTakenOn  *time.Time     `json:"dinner_takenon"`
}

// UpdateFoodLog handles POST /food-log/update: the single write path for
// recording a meal check-in.
func (h *Handler) UpdateFoodLog(c *gin.Context) {
	var req foodLogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	in := foodlog.UpsertInput{
		RegistrationID: string(req.RegistrationID),
		Name:           req.Name,
		Lunch:          req.Lunch,
		Dinner:         req.Dinner,
		LunchTakenOn:   req.LunchTakenOn,
		DinnerTakenOn:  req.DinnerTakenOn,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format. Please use YYYY-MM-DD"})
			return
		}
		in.Date = date
	}

	row, err := h.foodLogs.Upsert(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// SearchFoodLogs handles GET /food-log/search?registrationid=&date=.
//
// Special registrations may return many rows (one per scan); ordinary
// registrations return at most one. The list shape is part of the contract.
func (h *Handler) SearchFoodLogs(c *gin.Context) {
	registrationid := c.Query("registrationid")
	dateStr := c.Query("date")
	if registrationid == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "registrationid and date are required"})
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format. Please use YYYY-MM-DD"})
		return
	}

	rows, err := h.foodLogs.BySchedule(c.Request.Context(), registrationid, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{"detail": "No data found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
