package competitions

import (
	"api/database"
	"api/models"
	"api/services"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAllCompetitions lists all competitions
// @Summary Get all competitions
// @Description Get all competitions, most recent first
// @Tags Competitions
// @Accept json
// @Produce json
// @Success 200 {array} models.Competition
// @Failure 401 {object} map[string]string
// @Router /competitions [get]
// @Security Bearer
func GetAllCompetitions(c *gin.Context) {
	var competitions []models.Competition
	if err := database.DB.Order("start_date DESC").Find(&competitions).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchCompetition)
		return
	}
	c.JSON(http.StatusOK, competitions)
}

// GetCompetition retrieves one competition with its entrants
// @Summary Get a competition
// @Description Get the specified competition with its entrants
// @Tags Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} models.Competition
// @Failure 404 {object} map[string]string
// @Router /competitions/{id} [get]
// @Security Bearer
func GetCompetition(c *gin.Context) {
	var competition models.Competition
	err := database.DB.
		Preload("Entrants.Athlete").
		Preload("Entrants.Club").
		Preload("Entrants.Participations.Discipline").
		First(&competition, "id = ?", c.Param("id")).Error
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}
	c.JSON(http.StatusOK, competition)
}

// CreateCompetition creates a new competition in the Upcoming state
// @Summary Create a competition
// @Description Create a new competition, initially Upcoming
// @Tags Competitions
// @Accept json
// @Produce json
// @Param request body CreateCompetitionRequest true "Competition details"
// @Success 201 {object} models.Competition
// @Failure 400 {object} map[string]string
// @Router /competitions [post]
// @Security Bearer
func CreateCompetition(c *gin.Context) {
	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidDates)
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || endDate.Before(startDate) {
		respondWithError(c, http.StatusBadRequest, ErrInvalidDates)
		return
	}

	competition := models.Competition{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.StatusUpcoming,
	}
	if err := database.DB.Create(&competition).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreate)
		return
	}
	c.JSON(http.StatusCreated, competition)
}

// StartCompetition moves an upcoming competition to InProgress
// @Summary Start a competition
// @Description Move an Upcoming competition to InProgress
// @Tags Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} models.Competition
// @Failure 404,409 {object} map[string]string
// @Router /competitions/{id}/start [put]
// @Security Bearer
func StartCompetition(c *gin.Context) {
	transition(c, services.StartCompetition)
}

// FinishCompetition finalizes an in-progress competition
// @Summary Finalize a competition
// @Description Close an InProgress competition for good; no more score submissions are accepted
// @Tags Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} models.Competition
// @Failure 404,409 {object} map[string]string
// @Router /competitions/{id}/finish [put]
// @Security Bearer
func FinishCompetition(c *gin.Context) {
	transition(c, services.FinalizeCompetition)
}

func transition(c *gin.Context, fn func(string) (models.Competition, error)) {
	competition, err := fn(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransition):
			respondWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrConflict):
			respondWithError(c, http.StatusConflict, err.Error())
		default:
			respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		}
		return
	}
	c.JSON(http.StatusOK, competition)
}

// GetCompetitionStandings returns the current scoreboard of a competition
// @Summary Get competition standings
// @Description Get the competition scoreboard grouped by discipline and category, best score first. This is the catch-up read path for live viewers, since the websocket stream never replays.
// @Tags Competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {array} services.DisciplineStandings
// @Failure 404 {object} map[string]string
// @Router /competitions/{id}/standings [get]
// @Security Bearer
func GetCompetitionStandings(c *gin.Context) {
	competitionID := c.Param("id")
	if !services.CompetitionExists(competitionID) {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	standings, err := services.CompetitionStandings(competitionID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchStandings)
		return
	}
	c.JSON(http.StatusOK, standings)
}
