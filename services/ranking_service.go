package services

import (
	"api/database"
	"api/models"
	"api/scoring"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Official annual points table: 1st place 10 points, 2nd 7, 3rd 5, then
// 4, 3, 2 and 1 point for every counted placement beyond it.
var annualPointsTable = []int{10, 7, 5, 4, 3, 2}

// RankingEntry is one athlete's accumulated standing in a discipline's
// annual ranking
type RankingEntry struct {
	AthleteID string `json:"athlete_id"`
	Athlete   string `json:"athlete"`
	Club      string `json:"club"`
	Points    int    `json:"points"`
	Events    int    `json:"events"`
	Position  int    `json:"position"`
}

// ClubRanking is one club's accumulated podium points for the year
type ClubRanking struct {
	Club     string `json:"club"`
	Points   int    `json:"points"`
	Position int    `json:"position"`
}

// PlacementRow is one eligible entrant's cumulative result in one discipline
// of one finalized competition, ready to be placed
type PlacementRow struct {
	AthleteID   string
	AthleteName string
	ClubName    string
	Score       decimal.Decimal
	SortKey     decimal.Decimal
}

// quorumCutoff returns how many placements earn points given n eligible
// entrants. Poorly attended events award few or no points: with two
// entrants only the winner counts, with three the top two, from four on
// every placement counts.
func quorumCutoff(n int) int {
	switch {
	case n < 2:
		return 0
	case n == 2:
		return 1
	case n == 3:
		return 2
	default:
		return n
	}
}

// placementPoints returns the points for a 0-based placement index
func placementPoints(index int) int {
	if index < len(annualPointsTable) {
		return annualPointsTable[index]
	}
	return 1
}

// rankingAccumulator folds per-competition placements into annual totals
type rankingAccumulator struct {
	// discipline name -> athlete id -> entry
	athletes map[string]map[string]*RankingEntry
	// insertion order per discipline, for stable output on point ties
	order     map[string][]string
	clubs     map[string]int
	clubOrder []string
}

func newRankingAccumulator() *rankingAccumulator {
	return &rankingAccumulator{
		athletes: make(map[string]map[string]*RankingEntry),
		order:    make(map[string][]string),
		clubs:    make(map[string]int),
	}
}

// addPlacements places the rows of one discipline in one competition and
// awards points. Rows must already exclude guests and disqualified results.
func (acc *rankingAccumulator) addPlacements(discipline string, rows []PlacementRow) {
	// Stable sort keeps equal sort keys in input order, so placements
	// are deterministic.
	sorted := make([]PlacementRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortKey.GreaterThan(sorted[j].SortKey)
	})

	cutoff := quorumCutoff(len(sorted))

	for i, row := range sorted {
		if i < cutoff {
			entry := acc.entryFor(discipline, row)
			entry.Points += placementPoints(i)
			entry.Events++
		}

		// Podium finishes earn their club one point each, independent of
		// the quorum gate on athlete points.
		if i <= 2 && row.ClubName != "" {
			if _, seen := acc.clubs[row.ClubName]; !seen {
				acc.clubOrder = append(acc.clubOrder, row.ClubName)
			}
			acc.clubs[row.ClubName]++
		}
	}
}

func (acc *rankingAccumulator) entryFor(discipline string, row PlacementRow) *RankingEntry {
	if acc.athletes[discipline] == nil {
		acc.athletes[discipline] = make(map[string]*RankingEntry)
	}
	entry, ok := acc.athletes[discipline][row.AthleteID]
	if !ok {
		entry = &RankingEntry{
			AthleteID: row.AthleteID,
			Athlete:   row.AthleteName,
			Club:      row.ClubName,
		}
		acc.athletes[discipline][row.AthleteID] = entry
		acc.order[discipline] = append(acc.order[discipline], row.AthleteID)
	}
	return entry
}

// finalize sorts accumulated totals descending and assigns 1-based positions
func (acc *rankingAccumulator) finalize() (map[string][]RankingEntry, []ClubRanking) {
	athleteRankings := make(map[string][]RankingEntry, len(acc.athletes))
	for discipline, ids := range acc.order {
		entries := make([]RankingEntry, 0, len(ids))
		for _, id := range ids {
			entries = append(entries, *acc.athletes[discipline][id])
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Points > entries[j].Points
		})
		for i := range entries {
			entries[i].Position = i + 1
		}
		athleteRankings[discipline] = entries
	}

	clubRankings := make([]ClubRanking, 0, len(acc.clubOrder))
	for _, club := range acc.clubOrder {
		clubRankings = append(clubRankings, ClubRanking{Club: club, Points: acc.clubs[club]})
	}
	sort.SliceStable(clubRankings, func(i, j int) bool {
		return clubRankings[i].Points > clubRankings[j].Points
	})
	for i := range clubRankings {
		clubRankings[i].Position = i + 1
	}

	return athleteRankings, clubRankings
}

// sortKeyFromSeries extracts the explicit tie-break sort key from a result's
// audit payload, falling back to the score itself. Disciplines with secondary
// criteria (faster time, more center hits) store sort_key in the submitted
// series.
func sortKeyFromSeries(rawSeries json.RawMessage, score decimal.Decimal) decimal.Decimal {
	if len(rawSeries) == 0 {
		return score
	}

	var seriesList []scoring.Series
	dec := json.NewDecoder(bytes.NewReader(rawSeries))
	dec.UseNumber()
	if err := dec.Decode(&seriesList); err != nil {
		return score
	}

	key := score
	for _, series := range seriesList {
		raw, ok := series["sort_key"]
		if !ok {
			continue
		}
		if num, ok := raw.(json.Number); ok {
			if parsed, err := decimal.NewFromString(num.String()); err == nil {
				key = parsed
			}
		}
	}
	return key
}

// ComputeAnnualRanking aggregates the finalized competitions of a year into
// per-discipline athlete rankings and club rankings. quarter limits the
// aggregation to competitions starting in that quarter; 0 means the whole
// year. Guests and disqualified results never earn points; the engine only
// reads results of competitions already marked Finalized, so it cannot
// observe an in-flight submission.
func ComputeAnnualRanking(year, quarter int) (map[string][]RankingEntry, []ClubRanking, error) {
	query := database.DB.
		Where("status = ?", models.StatusFinalized).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Order("start_date")
	if quarter >= 1 && quarter <= 4 {
		query = query.Where("EXTRACT(QUARTER FROM start_date) = ?", quarter)
	}

	var competitions []models.Competition
	if err := query.Find(&competitions).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch finalized competitions: %w", err)
	}

	acc := newRankingAccumulator()
	for _, comp := range competitions {
		if err := acc.addCompetition(comp.ID); err != nil {
			return nil, nil, err
		}
	}

	athleteRankings, clubRankings := acc.finalize()
	return athleteRankings, clubRankings, nil
}

// addCompetition loads one finalized competition's results and feeds its
// per-discipline placements into the accumulator
func (acc *rankingAccumulator) addCompetition(competitionID string) error {
	var entrants []models.Entrant
	err := database.DB.
		Where("competition_id = ?", competitionID).
		Preload("Athlete").
		Preload("Club").
		Preload("Participations.Discipline").
		Find(&entrants).Error
	if err != nil {
		return fmt.Errorf("failed to fetch entrants: %w", err)
	}
	if len(entrants) == 0 {
		return nil
	}

	ids := make([]string, 0, len(entrants))
	for _, e := range entrants {
		ids = append(ids, e.ID)
	}

	var results []models.Result
	if err := database.DB.Where("entrant_id IN ?", ids).Find(&results).Error; err != nil {
		return fmt.Errorf("failed to fetch results: %w", err)
	}
	resultsByEntrant := make(map[string]*models.Result, len(results))
	for i := range results {
		resultsByEntrant[results[i].EntrantID] = &results[i]
	}

	// Group eligible rows per discipline, in entrant order.
	rowsByDiscipline := make(map[string][]PlacementRow)
	var disciplineOrder []string

	for _, entrant := range entrants {
		result, ok := resultsByEntrant[entrant.ID]
		if !ok || result.Disqualified {
			continue
		}
		if entrant.Athlete == nil || entrant.Athlete.IsGuest {
			continue
		}

		row := PlacementRow{
			AthleteID:   entrant.AthleteID,
			AthleteName: entrant.Athlete.DisplayName(),
			Score:       result.Score,
			SortKey:     sortKeyFromSeries(result.RawSeries, result.Score),
		}
		if entrant.Club != nil {
			row.ClubName = entrant.Club.Name
		}

		for _, p := range entrant.Participations {
			if p.Discipline == nil {
				continue
			}
			name := p.Discipline.Name
			if _, seen := rowsByDiscipline[name]; !seen {
				disciplineOrder = append(disciplineOrder, name)
			}
			rowsByDiscipline[name] = append(rowsByDiscipline[name], row)
		}
	}

	for _, name := range disciplineOrder {
		acc.addPlacements(name, rowsByDiscipline[name])
	}
	return nil
}
