package services

import (
	"api/database"
	"api/models"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompetitionExists reports whether the competition is known
func CompetitionExists(competitionID string) bool {
	var count int64
	database.DB.Model(&models.Competition{}).Where("id = ?", competitionID).Count(&count)
	return count > 0
}

// StartCompetition moves an upcoming competition to InProgress
func StartCompetition(competitionID string) (models.Competition, error) {
	return transitionCompetition(competitionID, models.StatusUpcoming, models.StatusInProgress)
}

// FinalizeCompetition closes an in-progress competition for good. Once
// Finalized no more scores are accepted and its results become visible to
// the annual ranking.
func FinalizeCompetition(competitionID string) (models.Competition, error) {
	return transitionCompetition(competitionID, models.StatusInProgress, models.StatusFinalized)
}

// transitionCompetition applies one step of the one-way lifecycle. The row
// is locked so two concurrent transitions cannot both succeed.
func transitionCompetition(competitionID, from, to string) (models.Competition, error) {
	var competition models.Competition
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&competition, "id = ?", competitionID).Error; err != nil {
			return err
		}
		if competition.Status != from {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, competition.Status, to)
		}
		competition.Status = to
		return tx.Model(&competition).Update("status", to).Error
	})
	return competition, translateTxError(err)
}

// ParticipationInput is one discipline/category/weapon choice at enrollment
type ParticipationInput struct {
	CategoryID string  `json:"category_id" binding:"required"`
	WeaponID   *string `json:"weapon_id"`
}

// EnrollEntrant enrolls an athlete into a competition with the given
// participations. The athlete's club is captured on the entrant row at this
// moment: later club changes never alter historical enrollments. Enrolling
// the same athlete twice returns the existing entrant.
func EnrollEntrant(competitionID, athleteID string, participations []ParticipationInput) (models.Entrant, error) {
	var entrant models.Entrant

	var competition models.Competition
	if err := database.DB.First(&competition, "id = ?", competitionID).Error; err != nil {
		return entrant, fmt.Errorf("%w: competition not found", ErrValidation)
	}
	if competition.Status == models.StatusFinalized {
		return entrant, ErrCompetitionClosed
	}

	var athlete models.Athlete
	if err := database.DB.First(&athlete, "id = ?", athleteID).Error; err != nil {
		return entrant, fmt.Errorf("%w: athlete not found", ErrValidation)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		entrant = models.Entrant{
			CompetitionID: competitionID,
			AthleteID:     athleteID,
			ClubID:        athlete.ClubID,
		}
		if err := tx.Where("competition_id = ? AND athlete_id = ?", competitionID, athleteID).
			FirstOrCreate(&entrant).Error; err != nil {
			return fmt.Errorf("failed to enroll entrant: %w", err)
		}

		for _, input := range participations {
			var category models.Category
			if err := tx.First(&category, "id = ?", input.CategoryID).Error; err != nil {
				return fmt.Errorf("%w: category not found", ErrValidation)
			}

			participation := models.Participation{
				EntrantID:    entrant.ID,
				DisciplineID: category.DisciplineID,
				CategoryID:   category.ID,
				WeaponID:     input.WeaponID,
			}
			if err := tx.Where("entrant_id = ? AND category_id = ?", entrant.ID, category.ID).
				FirstOrCreate(&participation).Error; err != nil {
				return fmt.Errorf("failed to create participation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return entrant, translateTxError(err)
	}

	err = database.DB.
		Preload("Athlete").
		Preload("Club").
		Preload("Participations.Discipline").
		Preload("Participations.Category").
		First(&entrant, "id = ?", entrant.ID).Error
	return entrant, err
}

// StandingRow is one entrant's line on the live scoreboard
type StandingRow struct {
	EntrantID    string `json:"entrant_id"`
	Athlete      string `json:"athlete"`
	Club         string `json:"club"`
	Weapon       string `json:"weapon"`
	Score        string `json:"score"`
	XCount       int    `json:"x_count"`
	Disqualified bool   `json:"disqualified"`
	Reason       string `json:"reason,omitempty"`
	IsGuest      bool   `json:"is_guest"`
}

// CategoryStandings groups scoreboard rows under one category
type CategoryStandings struct {
	Category string        `json:"category"`
	Rows     []StandingRow `json:"rows"`
}

// DisciplineStandings groups a competition's categories under one discipline
type DisciplineStandings struct {
	Discipline string              `json:"discipline"`
	Categories []CategoryStandings `json:"categories"`
}

// CompetitionStandings builds the current scoreboard of a competition,
// grouped by discipline and category, best score first with disqualified
// entrants pinned to the bottom. This is the read path a reconnecting live
// viewer uses to catch up, since the broadcast stream never replays.
func CompetitionStandings(competitionID string) ([]DisciplineStandings, error) {
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
		return nil, fmt.Errorf("failed to fetch entrants: %w", err)
	}

	ids := make([]string, 0, len(entrants))
	for _, e := range entrants {
		ids = append(ids, e.ID)
	}
	var results []models.Result
	if len(ids) > 0 {
		if err := database.DB.Where("entrant_id IN ?", ids).Find(&results).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch results: %w", err)
		}
	}
	resultsByEntrant := make(map[string]*models.Result, len(results))
	for i := range results {
		resultsByEntrant[results[i].EntrantID] = &results[i]
	}

	type groupKey struct{ discipline, category string }
	type sortableRow struct {
		row          StandingRow
		sortKey      decimal.Decimal
		disqualified bool
	}
	groups := make(map[groupKey][]sortableRow)
	var keyOrder []groupKey

	for _, entrant := range entrants {
		result, ok := resultsByEntrant[entrant.ID]
		if !ok {
			continue
		}

		for _, p := range entrant.Participations {
			if p.Discipline == nil || p.Category == nil {
				continue
			}

			row := StandingRow{
				EntrantID:    entrant.ID,
				Score:        result.Score.StringFixed(2),
				XCount:       result.XCount,
				Disqualified: result.Disqualified,
			}
			if result.DisqualifiedReason != nil {
				row.Reason = *result.DisqualifiedReason
			}
			if entrant.Athlete != nil {
				row.Athlete = entrant.Athlete.DisplayName()
				row.IsGuest = entrant.Athlete.IsGuest
			}
			if entrant.Club != nil {
				row.Club = entrant.Club.Name
			}
			if p.Weapon != nil {
				row.Weapon = p.Weapon.Label()
			} else {
				row.Weapon = "N/A"
			}

			key := groupKey{p.Discipline.Name, p.Category.Name}
			if _, seen := groups[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			groups[key] = append(groups[key], sortableRow{
				row:          row,
				sortKey:      sortKeyFromSeries(result.RawSeries, result.Score),
				disqualified: result.Disqualified,
			})
		}
	}

	// Sort every group: eligible rows by sort key descending, disqualified
	// rows last regardless of their numeric score.
	byDiscipline := make(map[string]*DisciplineStandings)
	var disciplineOrder []string
	for _, key := range keyOrder {
		rows := groups[key]
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].disqualified != rows[j].disqualified {
				return !rows[i].disqualified
			}
			return rows[i].sortKey.GreaterThan(rows[j].sortKey)
		})

		flat := make([]StandingRow, len(rows))
		for i, r := range rows {
			flat[i] = r.row
		}

		ds, seen := byDiscipline[key.discipline]
		if !seen {
			ds = &DisciplineStandings{Discipline: key.discipline}
			byDiscipline[key.discipline] = ds
			disciplineOrder = append(disciplineOrder, key.discipline)
		}
		ds.Categories = append(ds.Categories, CategoryStandings{Category: key.category, Rows: flat})
	}

	standings := make([]DisciplineStandings, 0, len(disciplineOrder))
	for _, name := range disciplineOrder {
		standings = append(standings, *byDiscipline[name])
	}
	return standings, nil
}
