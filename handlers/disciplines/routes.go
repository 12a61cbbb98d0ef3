package disciplines

import (
	"api/middleware"
	"api/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to disciplines and categories
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	disciplines := r.Group("/disciplines")
	disciplines.Use(middleware.AuthMiddleware())
	{
		disciplines.GET("/", GetAllDisciplines)
		disciplines.POST("/", middleware.RequireRole(models.RoleStaff), CreateDiscipline)
		disciplines.POST("/:id/categories", middleware.RequireRole(models.RoleStaff), CreateCategory)
	}
}
