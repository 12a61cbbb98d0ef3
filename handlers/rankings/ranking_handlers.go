package rankings

import (
	"api/services"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// DisciplineRanking is one discipline's ordered annual ranking
type DisciplineRanking struct {
	Discipline string                  `json:"discipline"`
	Ranking    []services.RankingEntry `json:"ranking"`
}

// AnnualRankingResponse is the full annual ranking report
type AnnualRankingResponse struct {
	Year         int                    `json:"year"`
	Quarter      int                    `json:"quarter,omitempty"`
	Disciplines  []DisciplineRanking    `json:"disciplines"`
	ClubRankings []services.ClubRanking `json:"club_rankings"`
}

// GetAnnualRanking computes the annual rankings
// @Summary Get annual rankings
// @Description Compute per-discipline athlete rankings and club rankings over the finalized competitions of a year. quarter limits the report to competitions starting in that quarter.
// @Tags Rankings
// @Accept json
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Param quarter query int false "Quarter 1-4, defaults to the whole year"
// @Success 200 {object} AnnualRankingResponse
// @Failure 500 {object} map[string]string
// @Router /rankings/annual [get]
// @Security Bearer
func GetAnnualRanking(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}
	quarter, err := strconv.Atoi(c.Query("quarter"))
	if err != nil || quarter < 1 || quarter > 4 {
		quarter = 0
	}

	athleteRankings, clubRankings, err := services.ComputeAnnualRanking(year, quarter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rankings"})
		return
	}

	resp := AnnualRankingResponse{
		Year:         year,
		Quarter:      quarter,
		ClubRankings: clubRankings,
		Disciplines:  make([]DisciplineRanking, 0, len(athleteRankings)),
	}
	names := make([]string, 0, len(athleteRankings))
	for discipline := range athleteRankings {
		names = append(names, discipline)
	}
	sort.Strings(names)
	for _, discipline := range names {
		resp.Disciplines = append(resp.Disciplines, DisciplineRanking{
			Discipline: discipline,
			Ranking:    athleteRankings[discipline],
		})
	}

	c.JSON(http.StatusOK, resp)
}
