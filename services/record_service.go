package services

import (
	"api/database"
	"api/models"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecordHolder identifies who set a score, for the record chain
type RecordHolder struct {
	AthleteID     string
	CompetitionID string
	SetOn         time.Time
}

// ShouldSupersede decides whether a new score beats the standing record.
// Ties never supersede: the first holder keeps the record.
func ShouldSupersede(current *models.Record, score decimal.Decimal) bool {
	if current == nil {
		return true
	}
	return score.GreaterThan(current.Score)
}

// considerRecord checks a freshly computed score against the standing record
// for the (discipline, category) pair and updates the record chain when it is
// strictly beaten. It must run on the store of the same transaction as the
// result write; the standing row is locked FOR UPDATE so two concurrent
// submissions cannot both believe they set the new record. When the pair has
// no record yet there is no row to lock, and the partial unique index on
// current records fails the slower of two racing inserts instead.
//
// Returns whether a new record was created and the previous holder, if any.
func considerRecord(store recordStore, disciplineID, categoryID string, score decimal.Decimal, holder RecordHolder) (bool, *models.Record, error) {
	previous, err := store.CurrentRecordForUpdate(disciplineID, categoryID)
	if err != nil {
		return false, nil, err
	}

	if !ShouldSupersede(previous, score) {
		return false, previous, nil
	}

	newRecord := models.Record{
		DisciplineID:  disciplineID,
		CategoryID:    categoryID,
		AthleteID:     holder.AthleteID,
		CompetitionID: holder.CompetitionID,
		Score:         score,
		SetOn:         holder.SetOn,
		IsCurrent:     true,
	}

	if previous != nil {
		if err := store.RetireRecord(previous); err != nil {
			return false, nil, fmt.Errorf("failed to retire previous record: %w", err)
		}
		newRecord.PredecessorID = &previous.ID
	}

	if err := store.CreateRecord(&newRecord); err != nil {
		return false, nil, fmt.Errorf("failed to create record: %w", err)
	}

	return true, previous, nil
}

// CurrentRecords returns the standing record of every (discipline, category)
// pair that has ever received a score, each with its immediate predecessor
// for "previous record" display
func CurrentRecords() ([]models.Record, error) {
	var records []models.Record
	err := database.DB.Where("is_current = true").
		Preload("Discipline").
		Preload("Category").
		Preload("Athlete").
		Preload("Predecessor").
		Preload("Predecessor.Athlete").
		Order("set_on DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return records, nil
}
