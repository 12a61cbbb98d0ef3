package disciplines

import (
	"api/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateDisciplineRequest model for registering a discipline
type CreateDisciplineRequest struct {
	Name         string `json:"name" binding:"required"`
	UsesLiveAmmo bool   `json:"uses_live_ammo"`
}

// CreateCategoryRequest model for adding a category to a discipline
type CreateCategoryRequest struct {
	Name           string  `json:"name" binding:"required"`
	AllowedCaliber *string `json:"allowed_caliber"`
}

// GetAllDisciplines lists all disciplines with their categories
// @Summary Get all disciplines
// @Description List every registered discipline with its categories
// @Tags Disciplines
// @Produce json
// @Success 200 {array} models.Discipline
// @Failure 500 {object} map[string]string
// @Router /disciplines [get]
// @Security Bearer
func GetAllDisciplines(c *gin.Context) {
	disciplines, err := services.ListDisciplines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch disciplines"})
		return
	}
	c.JSON(http.StatusOK, disciplines)
}

// CreateDiscipline registers a new discipline
// @Summary Create a discipline
// @Description Register a new discipline. Its scoring strategy is resolved from the name at creation time.
// @Tags Disciplines
// @Accept json
// @Produce json
// @Param discipline body CreateDisciplineRequest true "Discipline details"
// @Success 201 {object} models.Discipline
// @Failure 400 {object} map[string]string
// @Router /disciplines [post]
// @Security Bearer
func CreateDiscipline(c *gin.Context) {
	var req CreateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discipline, err := services.CreateDiscipline(req.Name, req.UsesLiveAmmo)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discipline"})
		return
	}
	c.JSON(http.StatusCreated, discipline)
}

// CreateCategory adds a category to a discipline
// @Summary Create a category
// @Description Add a category to an existing discipline, optionally restricted to one caliber
// @Tags Disciplines
// @Accept json
// @Produce json
// @Param id path string true "Discipline ID"
// @Param category body CreateCategoryRequest true "Category details"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Router /disciplines/{id}/categories [post]
// @Security Bearer
func CreateCategory(c *gin.Context) {
	disciplineID := c.Param("id")

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := services.CreateCategory(disciplineID, req.Name, req.AllowedCaliber)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}
