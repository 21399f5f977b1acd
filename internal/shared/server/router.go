package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talent-backend/internal/shared/config"
	"talent-backend/internal/shared/metrics"
	"talent-backend/internal/shared/server/middleware"
	"talent-backend/internal/shared/server/respond"
)

// NewRouter constructs the gin engine with middleware applied and feature
// routes registered under /api/v1. Feature packages contribute their routes
// through register callbacks so this package stays free of domain imports.
func NewRouter(cfg config.Config, register ...func(*gin.RouterGroup)) *gin.Engine {
	if cfg.Env == "production" || cfg.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	for _, fn := range register {
		fn(api)
	}
	return r
}

// rateLimitConfig gives the analysis status endpoint its own polling
// budget so a tight poll loop cannot starve the rest of the API.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 20, Burst: 40},
			"POLLING": {Rate: 1, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet && strings.HasSuffix(c.FullPath(), "/analysis") {
				return "POLLING"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
