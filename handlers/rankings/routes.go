package rankings

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to annual rankings
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	rankings := r.Group("/rankings")
	rankings.Use(middleware.AuthMiddleware())
	{
		rankings.GET("/annual", GetAnnualRanking)
	}
}
