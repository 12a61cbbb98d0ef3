package results

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Error message constants
const (
	ErrInvalidRequest     = "Invalid request data"
	ErrInvalidSeries      = "series_list must be a JSON array of series objects"
	ErrResultNotFound     = "Result not found"
	ErrFailedFetchRecords = "Failed to fetch records"
	ErrFailedSubmit       = "Failed to submit score, please retry"
)

// SubmitScoreRequest model for submitting the scores of one entrant.
// SeriesList is kept raw so numbers survive as exact decimal strings.
type SubmitScoreRequest struct {
	EntrantID          string          `json:"entrant_id" binding:"required"`
	RoundLabel         string          `json:"round_label" binding:"required"`
	SeriesList         json.RawMessage `json:"series_list" binding:"required"`
	Disqualified       bool            `json:"disqualified"`
	DisqualifiedReason string          `json:"disqualified_reason"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
