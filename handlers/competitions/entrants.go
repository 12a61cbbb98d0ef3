package competitions

import (
	"api/database"
	"api/models"
	"api/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// EnrollEntrant enrolls an athlete into a competition
// @Summary Enroll an athlete
// @Description Enroll an athlete into the competition with one or more discipline/category participations. The athlete's current club is frozen on the enrollment.
// @Tags Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Param request body EnrollEntrantRequest true "Enrollment details"
// @Success 201 {object} models.Entrant
// @Failure 400,409,422 {object} map[string]string
// @Router /competitions/{id}/entrants [post]
// @Security Bearer
func EnrollEntrant(c *gin.Context) {
	var req EnrollEntrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	entrant, err := services.EnrollEntrant(c.Param("id"), req.AthleteID, req.Participations)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompetitionClosed):
			respondWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrValidation):
			respondWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			respondWithError(c, http.StatusInternalServerError, "Failed to enroll entrant")
		}
		return
	}
	c.JSON(http.StatusCreated, entrant)
}

// GetCompetitionEntrants lists a competition's entrants
// @Summary Get competition entrants
// @Description Get all entrants enrolled in the specified competition
// @Tags Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {array} models.Entrant
// @Failure 404 {object} map[string]string
// @Router /competitions/{id}/entrants [get]
// @Security Bearer
func GetCompetitionEntrants(c *gin.Context) {
	competitionID := c.Param("id")
	if !services.CompetitionExists(competitionID) {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	var entrants []models.Entrant
	err := database.DB.
		Where("competition_id = ?", competitionID).
		Preload("Athlete").
		Preload("Club").
		Preload("Participations.Discipline").
		Preload("Participations.Category").
		Preload("Participations.Weapon").
		Find(&entrants).Error
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEntrants)
		return
	}
	c.JSON(http.StatusOK, entrants)
}
