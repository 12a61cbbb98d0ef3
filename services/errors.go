package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy of the scoring engine. Handlers map these onto HTTP
// statuses; everything else bubbles up as a generic retryable failure.
var (
	// ErrValidation covers malformed or missing submission fields,
	// rejected before anything is persisted
	ErrValidation = errors.New("invalid submission data")

	// ErrCompetitionClosed rejects score submissions for a finalized
	// competition
	ErrCompetitionClosed = errors.New("competition is closed, no more scores can be submitted")

	// ErrNoParticipation means the entrant has no discipline to score against
	ErrNoParticipation = errors.New("entrant has no registered participations")

	// ErrConflict signals record-lock contention; the whole submission is
	// safe to retry
	ErrConflict = errors.New("concurrent submission conflict, retry the request")

	// ErrInvalidTransition rejects competition status changes that skip or
	// reverse the lifecycle
	ErrInvalidTransition = errors.New("invalid competition status transition")
)

// Postgres SQLSTATE codes that mean the transaction lost a race and can be
// retried as a whole. Unique violations are included for the first-record
// race: when no current record row exists yet there is nothing to lock, and
// the partial unique index on (discipline_id, category_id) is what stops
// the second insert.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgUniqueViolation      = "23505"
)

// translateTxError converts retryable database contention errors into
// ErrConflict and passes everything else through
func translateTxError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgUniqueViolation:
			return ErrConflict
		}
	}
	return err
}
