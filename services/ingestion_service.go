package services

import (
	"api/database"
	"api/metrics"
	"api/models"
	"api/realtime"
	"api/scoring"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScoreSubmission is one judge-entered batch of series for an entrant
type ScoreSubmission struct {
	EntrantID          string
	RoundLabel         string
	SeriesList         []scoring.Series
	Disqualified       bool
	DisqualifiedReason string
	Judge              *models.User
}

// SubmitScore runs the full ingestion pipeline for one submission:
// validation, score calculation, the transactional result upsert plus
// record update, and the post-commit live broadcast.
//
// The result row is keyed by entrant: replaying the same submission
// overwrites the row and yields the same final state, never a duplicate.
// Broadcast failures are logged and swallowed; a committed submission is
// successful even if no live viewer hears about it.
func SubmitScore(hub *realtime.Hub, sub ScoreSubmission) (*models.Result, error) {
	if sub.EntrantID == "" || sub.RoundLabel == "" {
		return nil, ErrValidation
	}

	var entrant models.Entrant
	err := database.DB.
		Preload("Competition").
		Preload("Athlete").
		Preload("Club").
		Preload("Participations", func(db *gorm.DB) *gorm.DB {
			return db.Order("participations.id")
		}).
		Preload("Participations.Discipline").
		Preload("Participations.Weapon").
		First(&entrant, "id = ?", sub.EntrantID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: entrant not found", ErrValidation)
		}
		return nil, fmt.Errorf("failed to fetch entrant: %w", err)
	}

	participation, err := submittableParticipation(&entrant)
	if err != nil {
		metrics.ScoreSubmissions.WithLabelValues("rejected").Inc()
		return nil, err
	}

	score, xCount := scoring.Compute(participation.Discipline.ScoringStrategy, sub.SeriesList)

	rawSeries, err := json.Marshal(sub.SeriesList)
	if err != nil {
		return nil, fmt.Errorf("%w: series payload is not serializable", ErrValidation)
	}

	result := models.Result{
		EntrantID:        entrant.ID,
		RoundLabel:       sub.RoundLabel,
		Score:            score,
		XCount:           xCount,
		RawSeries:        rawSeries,
		Disqualified:     sub.Disqualified,
		VerificationCode: uuid.NewString(),
		UpdatedAt:        time.Now(),
	}
	if sub.Disqualified && sub.DisqualifiedReason != "" {
		result.DisqualifiedReason = &sub.DisqualifiedReason
	}
	if sub.Judge != nil {
		result.JudgeID = &sub.Judge.ID
	}

	var recordBroken bool
	start := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		broken, err := applySubmission(gormSubmissionStore{tx: tx}, &entrant, participation, &result)
		recordBroken = broken
		return err
	})
	metrics.RecordDBOperation("submit_score", "results", start)

	if err != nil {
		metrics.ScoreSubmissions.WithLabelValues("failed").Inc()
		return nil, translateTxError(err)
	}

	metrics.ScoreSubmissions.WithLabelValues("accepted").Inc()
	if recordBroken {
		metrics.RecordsBroken.Inc()
	}

	broadcastResult(hub, &entrant, &result, sub.Judge)

	return &result, nil
}

// submittableParticipation checks that the entrant may still receive a
// score and returns the participation the submission applies to
func submittableParticipation(entrant *models.Entrant) (*models.Participation, error) {
	if entrant.Competition != nil && entrant.Competition.Status == models.StatusFinalized {
		return nil, ErrCompetitionClosed
	}

	participation := entrant.PrimaryParticipation()
	if participation == nil || participation.Discipline == nil {
		return nil, ErrNoParticipation
	}
	return participation, nil
}

// applySubmission runs the transactional steps of one submission: the
// idempotent result upsert, then the record check for eligible scores. The
// store fills result with the row as persisted, so on resubmission the
// caller sees the stored verification code, not the freshly generated one.
func applySubmission(store submissionStore, entrant *models.Entrant, participation *models.Participation, result *models.Result) (bool, error) {
	if err := store.UpsertResult(result); err != nil {
		return false, err
	}

	// Disqualified scores never enter the record chain
	if result.Disqualified {
		return false, nil
	}

	setOn := result.UpdatedAt
	if entrant.Competition != nil {
		setOn = entrant.Competition.StartDate
	}
	broken, _, err := considerRecord(store, participation.DisciplineID, participation.CategoryID, result.Score, RecordHolder{
		AthleteID:     entrant.AthleteID,
		CompetitionID: entrant.CompetitionID,
		SetOn:         setOn,
	})
	return broken, err
}

// broadcastResult publishes the committed result to the competition's live
// group. Best effort only: failures are logged, never surfaced.
func broadcastResult(hub *realtime.Hub, entrant *models.Entrant, result *models.Result, judge *models.User) {
	if hub == nil {
		return
	}

	update := realtime.ResultUpdate{
		EntrantID:    entrant.ID,
		Score:        result.Score.StringFixed(2),
		XCount:       result.XCount,
		Disqualified: result.Disqualified,
		Weapon:       "N/A",
	}
	if entrant.Athlete != nil {
		update.Athlete = entrant.Athlete.DisplayName()
	}
	if entrant.Club != nil {
		update.Club = entrant.Club.Name
	}
	if p := entrant.PrimaryParticipation(); p != nil && p.Weapon != nil {
		update.Weapon = p.Weapon.Label()
	}

	err := hub.Publish(entrant.CompetitionID, judge, realtime.Envelope{
		Type: "result_update",
		Data: update,
	})
	if err != nil {
		log.Printf("broadcast skipped for entrant %s: %v", entrant.ID, err)
		return
	}
	metrics.BroadcastsPublished.Inc()
}
