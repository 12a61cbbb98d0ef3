package v1

import (
	"api/handlers/auth"
	"api/handlers/competitions"
	"api/handlers/disciplines"
	"api/handlers/rankings"
	"api/handlers/results"
	"api/middleware"
	"api/realtime"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
// hub: the live broadcast hub owned by the process, wired into the
// handlers that publish or serve live score updates
func Register(r *gin.Engine, hub *realtime.Hub) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	disciplines.RegisterRoutes(v1)
	competitions.RegisterRoutes(v1, hub)
	results.RegisterRoutes(v1, hub)
	rankings.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
