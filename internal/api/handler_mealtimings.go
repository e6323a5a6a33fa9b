package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mealtrack-backend/internal/mealtime"
)

// GetMealTimings handles GET and POST /meal-timings/timings. Some deployed
// scanners issue POSTs here, so both methods are routed to it.
func (h *Handler) GetMealTimings(c *gin.Context) {
	lunch, err := h.policy.Window(mealtime.MealLunch)
	if err != nil {
		respondError(c, err)
		return
	}
	dinner, err := h.policy.Window(mealtime.MealDinner)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lunch": gin.H{
			"start_time": mealtime.FormatClock(lunch.Start),
			"end_time":   mealtime.FormatClock(lunch.End),
		},
		"dinner": gin.H{
			"start_time": mealtime.FormatClock(dinner.Start),
			"end_time":   mealtime.FormatClock(dinner.End),
		},
	})
}

// ClassifyScan handles GET /meal-timings/classify?meal_type=&scan_time=.
// scan_time defaults to the current moment.
func (h *Handler) ClassifyScan(c *gin.Context) {
	mealType := mealtime.MealType(c.Query("meal_type"))

	at := time.Now()
	if v := c.Query("scan_time"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid scan_time format. Use RFC3339."})
			return
		}
		at = parsed
	}

	verdict, err := h.policy.Classify(mealType, at)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meal_type": mealType,
		"scan_time": at,
		"status":    verdict,
	})
}
