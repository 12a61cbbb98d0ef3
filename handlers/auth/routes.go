package auth

import (
	"api/middleware"
	"api/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to authentication
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", Login)
		auth.POST("/logout", Logout)
		auth.GET("/check", middleware.AuthMiddleware(), CheckAuth)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RequireRole(models.RoleAdmin),
			RegisterUser)
	}
}
