package competitions

import (
	"api/services"

	"github.com/gin-gonic/gin"
)

// Error message constants
const (
	ErrCompetitionNotFound    = "Competition not found"
	ErrFailedFetchCompetition = "Failed to fetch competitions"
	ErrFailedCreate           = "Failed to create competition"
	ErrFailedFetchEntrants    = "Failed to fetch entrants"
	ErrFailedFetchStandings   = "Failed to fetch standings"
	ErrInvalidRequest         = "Invalid request data"
	ErrInvalidDates           = "Invalid date format, expected YYYY-MM-DD"
)

// CreateCompetitionRequest model for creating a competition
type CreateCompetitionRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// EnrollEntrantRequest model for enrolling an athlete into a competition
type EnrollEntrantRequest struct {
	AthleteID      string                        `json:"athlete_id" binding:"required"`
	Participations []services.ParticipationInput `json:"participations" binding:"required,min=1"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
