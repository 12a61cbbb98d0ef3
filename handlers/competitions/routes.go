package competitions

import (
	"api/middleware"
	"api/models"
	"api/realtime"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to competitions
// r: the RouterGroup to which the routes are added
// hub: the live broadcast hub owned by the process
func RegisterRoutes(r *gin.RouterGroup, hub *realtime.Hub) {
	competitions := r.Group("/competitions")
	competitions.Use(middleware.AuthMiddleware())
	{
		// Competition management routes
		competitions.GET("/", GetAllCompetitions)
		competitions.GET("/:id", GetCompetition)
		competitions.POST("/", middleware.RequireRole(models.RoleStaff), CreateCompetition)
		competitions.PUT("/:id/start", middleware.RequireRole(models.RoleStaff), StartCompetition)
		competitions.PUT("/:id/finish", middleware.RequireRole(models.RoleStaff), FinishCompetition)

		// Enrollment routes
		competitions.GET("/:id/entrants", GetCompetitionEntrants)
		competitions.POST("/:id/entrants", middleware.RequireRole(models.RoleStaff), EnrollEntrant)

		// Live scoreboard routes
		competitions.GET("/:id/standings", GetCompetitionStandings)
		competitions.GET("/:id/ws", CompetitionWebSocket(hub))
	}
}
