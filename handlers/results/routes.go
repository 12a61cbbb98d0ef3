package results

import (
	"api/middleware"
	"api/models"
	"api/realtime"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to results and records
// r: the RouterGroup to which the routes are added
// hub: the live broadcast hub owned by the process
func RegisterRoutes(r *gin.RouterGroup, hub *realtime.Hub) {
	// Judges resubmit corrections in bursts; keep the limiter generous
	submitRateLimiter := middleware.NewRateLimiter(600, 60)

	results := r.Group("/results")
	results.Use(middleware.AuthMiddleware())
	{
		results.POST("/submit",
			middleware.RequireRole(models.RoleJudge, models.RoleStaff),
			middleware.RateLimiterMiddleware(submitRateLimiter),
			SubmitScore(hub))
		results.GET("/entrants/:entrant_id", GetEntrantResult)
		results.GET("/records", GetCurrentRecords)
	}
}
