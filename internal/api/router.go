package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"mealtrack-backend/config"
	"mealtrack-backend/internal/auth"
	"mealtrack-backend/internal/foodlog"
	"mealtrack-backend/internal/mealtime"
	"mealtrack-backend/internal/mw"
	"mealtrack-backend/internal/registry"
	"mealtrack-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, svc *foodlog.Service, policy *mealtime.Policy, reg *registry.Registry) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, svc, policy, reg, cfg.Auth)

	rateLimiter := mw.RateLimiter(
		rate.Limit(cfg.Server.RateLimitPerSec),
		cfg.Server.RateLimitBurst,
		cfg.Server.RequestIPHeader,
	)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	bearer := auth.BearerAuth(cfg.Auth.SigningKey, cfg.Auth.Issuer)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(mw.RequestID(), mw.Metrics(), rateLimiter)
	{
		// Unauthenticated: account bootstrap.
		api.POST("/users/register", handler.Register)
		api.POST("/users/login", handler.Login)
		api.POST("/users/refresh", handler.Refresh)

		authed := api.Group("")
		authed.Use(bearer)
		{
			authed.GET("/users", handler.ListUsers)
			authed.GET("/users/me", handler.Me)

			authed.GET("/food-log/search", handler.SearchFoodLogs)
			authed.POST("/food-log/update", handler.UpdateFoodLog)

			authed.GET("/participants", handler.ListParticipants)
			authed.GET("/participants/search", handler.SearchParticipant)

			authed.GET("/audit-log/by-entity/:entity_id", handler.AuditLogsByEntity)
			authed.GET("/audit-log/by-registration/:registration_id", handler.AuditLogsByRegistration)
			authed.GET("/audit-log/search", handler.SearchAuditLogs)
			authed.POST("/audit-log/update", handler.UpdateAuditLog)

			authed.POST("/error-logs", handler.CreateErrorLog)
			authed.GET("/error-logs", handler.ListErrorLogs)

			// Timings are static per process; cache the GET form.
			authed.GET("/meal-timings/timings", caching, handler.GetMealTimings)
			authed.POST("/meal-timings/timings", handler.GetMealTimings)
			authed.GET("/meal-timings/classify", handler.ClassifyScan)
		}
	}

	return r
}
