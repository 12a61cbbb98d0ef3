package results

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/realtime"
	"api/scoring"
	"api/services"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmitScore ingests one judge-entered score submission
// @Summary Submit a score
// @Description Compute, verify and persist the cumulative score of an entrant from the submitted series. Resubmitting for the same entrant overwrites the previous result. On success the update is broadcast to the competition's live viewers.
// @Tags Results
// @Accept json
// @Produce json
// @Param request body SubmitScoreRequest true "Score submission"
// @Success 200 {object} models.Result
// @Failure 400,409,422 {object} map[string]string
// @Router /results/submit [post]
// @Security Bearer
func SubmitScore(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.GetUserFromRequest(c)
		if err != nil {
			return
		}

		var req SubmitScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
			return
		}

		// Decode the series with json.Number so scores keep their exact
		// decimal representation all the way down.
		var seriesList []scoring.Series
		dec := json.NewDecoder(bytes.NewReader(req.SeriesList))
		dec.UseNumber()
		if err := dec.Decode(&seriesList); err != nil {
			respondWithError(c, http.StatusBadRequest, ErrInvalidSeries)
			return
		}

		result, err := services.SubmitScore(hub, services.ScoreSubmission{
			EntrantID:          req.EntrantID,
			RoundLabel:         req.RoundLabel,
			SeriesList:         seriesList,
			Disqualified:       req.Disqualified,
			DisqualifiedReason: req.DisqualifiedReason,
			Judge:              user,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCompetitionClosed):
				respondWithError(c, http.StatusConflict, err.Error())
			case errors.Is(err, services.ErrNoParticipation):
				respondWithError(c, http.StatusUnprocessableEntity, err.Error())
			case errors.Is(err, services.ErrValidation):
				respondWithError(c, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrConflict):
				respondWithError(c, http.StatusConflict, err.Error())
			default:
				respondWithError(c, http.StatusInternalServerError, ErrFailedSubmit)
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetEntrantResult returns the authoritative result of one entrant
// @Summary Get an entrant's result
// @Description Get the single authoritative result row of the specified entrant
// @Tags Results
// @Accept json
// @Produce json
// @Param entrant_id path string true "Entrant ID"
// @Success 200 {object} models.Result
// @Failure 404 {object} map[string]string
// @Router /results/entrants/{entrant_id} [get]
// @Security Bearer
func GetEntrantResult(c *gin.Context) {
	var result models.Result
	err := database.DB.First(&result, "entrant_id = ?", c.Param("entrant_id")).Error
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrResultNotFound)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCurrentRecords lists standing records with their predecessors
// @Summary Get standing records
// @Description Get the current record of every discipline/category pair, each with the immediately preceding holder
// @Tags Results
// @Accept json
// @Produce json
// @Success 200 {array} models.Record
// @Failure 500 {object} map[string]string
// @Router /results/records [get]
// @Security Bearer
func GetCurrentRecords(c *gin.Context) {
	records, err := services.CurrentRecords()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchRecords)
		return
	}
	c.JSON(http.StatusOK, records)
}
