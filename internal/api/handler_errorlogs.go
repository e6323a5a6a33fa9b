package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mealtrack-backend/internal/auth"
	"mealtrack-backend/internal/model"
	"mealtrack-backend/internal/store"
)

type errorLogCreateRequest struct {
	UserID       int64      `json:"user_id" binding:"required"`
	RegistrantID int64      `json:"registrant_id"`
	Error        string     `json:"error" binding:"required"`
	ErrorCode    string     `json:"error_code"`
	ScanTime     *time.Time `json:"scan_time"`
}

// CreateErrorLog handles POST /error-logs. The response carries a refreshed
// access token so scanners can keep their session alive on the error path.
func (h *Handler) CreateErrorLog(c *gin.Context) {
	var req errorLogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if len(req.ErrorCode) > 2 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "error_code must be at most two characters"})
		return
	}

	scanTime := time.Now()
	if req.ScanTime != nil {
		scanTime = *req.ScanTime
	}
	row := &model.ErrorLog{
		UserID:       req.UserID,
		RegistrantID: req.RegistrantID,
		Error:        req.Error,
		ErrorCode:    req.ErrorCode,
		ScanTime:     scanTime,
	}
	if err := h.store.CreateErrorLog(c.Request.Context(), row); err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"userid":        row.UserID,
		"registrant_id": strconv.FormatInt(row.RegistrantID, 10),
		"error":         row.Error,
		"error_code":    row.ErrorCode,
		"scan_time":     row.ScanTime,
	}
	if claims, ok := auth.CurrentClaims(c); ok {
		if token, err := auth.IssueAccess(claims.Username(), h.authCfg.Issuer, h.authCfg.SigningKey, h.authCfg.AccessTTL); err == nil {
			resp["access_token"] = token
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListErrorLogs handles GET /error-logs with optional filters.
func (h *Handler) ListErrorLogs(c *gin.Context) {
	filter := store.ErrorLogFilter{}
	filter.Skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	filter.ErrorCode = c.Query("error_code")

	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user_id"})
			return
		}
		filter.UserID = &id
	}
	if v := c.Query("registrant_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid registrant_id"})
			return
		}
		filter.RegistrantID = &id
	}
	if v := c.Query("start_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid start_date format. Please use YYYY-MM-DD."})
			return
		}
		filter.StartDate = &d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid end_date format. Please use YYYY-MM-DD."})
			return
		}
		filter.EndDate = &d
	}

	rows, err := h.store.ListErrorLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No error logs found matching the criteria."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
