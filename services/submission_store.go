package services

import (
	"errors"
	"fmt"

	"api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordStore is the persistence surface of the record tracker
type recordStore interface {
	// CurrentRecordForUpdate returns the pair's current record locked for
	// the rest of the transaction, or nil when the pair has none yet
	CurrentRecordForUpdate(disciplineID, categoryID string) (*models.Record, error)
	RetireRecord(record *models.Record) error
	CreateRecord(record *models.Record) error
}

// submissionStore is everything one score submission writes. The
// transactional pipeline runs against this interface so its semantics can
// be exercised without a database.
type submissionStore interface {
	recordStore

	// UpsertResult writes the single authoritative result row for the
	// entrant and fills result with the persisted row. On resubmission the
	// score columns are replaced and the verification code of the first
	// submission is kept and returned.
	UpsertResult(result *models.Result) error
}

// gormSubmissionStore runs the submission writes on one gorm transaction
type gormSubmissionStore struct {
	tx *gorm.DB
}

func (s gormSubmissionStore) UpsertResult(result *models.Result) error {
	return s.tx.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "entrant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"round_label", "score", "x_count", "raw_series",
				"disqualified", "disqualified_reason", "judge_id", "updated_at",
			}),
		},
		// RETURNING reads the row as stored, so a resubmission comes back
		// with the original verification code instead of the one generated
		// for this call.
		clause.Returning{},
	).Create(result).Error
}

func (s gormSubmissionStore) CurrentRecordForUpdate(disciplineID, categoryID string) (*models.Record, error) {
	var current models.Record
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("discipline_id = ? AND category_id = ? AND is_current = true", disciplineID, categoryID).
		First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standing record: %w", err)
	}
	return &current, nil
}

func (s gormSubmissionStore) RetireRecord(record *models.Record) error {
	// The old holder's row stays forever; only the flag flips.
	return s.tx.Model(record).Update("is_current", false).Error
}

func (s gormSubmissionStore) CreateRecord(record *models.Record) error {
	return s.tx.Create(record).Error
}
