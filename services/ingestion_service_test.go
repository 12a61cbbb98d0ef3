package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"api/models"
	"api/realtime"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitScoreRejectsIncompleteSubmissions(t *testing.T) {
	tests := []struct {
		name string
		sub  ScoreSubmission
	}{
		{"missing entrant", ScoreSubmission{RoundLabel: "final"}},
		{"missing round label", ScoreSubmission{EntrantID: "e-1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := SubmitScore(nil, tc.sub)
			require.Nil(t, result)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

type recordingSubscriber struct {
	envelopes chan realtime.Envelope
	fail      bool
}

func (s *recordingSubscriber) Send(env realtime.Envelope) error {
	if s.fail {
		return errors.New("connection gone")
	}
	s.envelopes <- env
	return nil
}

func testEntrant() *models.Entrant {
	club := &models.Club{Name: "Club Tiro Central"}
	athlete := &models.Athlete{Firstname: "Ana", Lastname: "Rojas"}
	return &models.Entrant{
		ID:            "entrant-1",
		CompetitionID: "comp-1",
		Athlete:       athlete,
		Club:          club,
	}
}

func testResult(score string) *models.Result {
	return &models.Result{
		EntrantID: "entrant-1",
		Score:     decimal.RequireFromString(score),
		XCount:    2,
		RawSeries: json.RawMessage(`[]`),
	}
}

func TestBroadcastResultDeliversExactScoreString(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Stop()

	sub := &recordingSubscriber{envelopes: make(chan realtime.Envelope, 1)}
	hub.Subscribe("comp-1", sub)

	// 70.5 in storage must reach viewers as "70.50": the two fractional
	// digits of the score column, never a shortened or float rendering.
	judge := &models.User{ID: "judge-1", Role: models.RoleJudge}
	broadcastResult(hub, testEntrant(), testResult("70.5"), judge)

	select {
	case env := <-sub.envelopes:
		assert.Equal(t, "result_update", env.Type)
		update, ok := env.Data.(realtime.ResultUpdate)
		require.True(t, ok)
		assert.Equal(t, "70.50", update.Score)
		assert.Equal(t, "Ana Rojas", update.Athlete)
		assert.Equal(t, "Club Tiro Central", update.Club)
	case <-time.After(time.Second):
		t.Fatal("no envelope delivered")
	}
}

func TestBroadcastResultSwallowsFailures(t *testing.T) {
	judge := &models.User{ID: "judge-1", Role: models.RoleJudge}

	// nil hub: nothing to deliver to, nothing to panic on
	broadcastResult(nil, testEntrant(), testResult("10"), judge)

	// unauthorized publisher: rejected by the hub, still no error escapes
	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Stop()
	viewer := &models.User{ID: "viewer-1", Role: models.RoleViewer}
	broadcastResult(hub, testEntrant(), testResult("10"), viewer)

	// dead subscriber: pruned by the hub, delivery never blocks
	sub := &recordingSubscriber{fail: true}
	hub.Subscribe("comp-1", sub)
	broadcastResult(hub, testEntrant(), testResult("10"), judge)
}

// fakeSubmissionStore is an in-memory submissionStore with the same
// contract as the gorm-backed one: one result row per entrant whose
// verification code survives resubmission, and a record chain per
// (discipline, category) pair with a single current row.
type fakeSubmissionStore struct {
	results map[string]models.Result
	records []*models.Record
	nextID  int
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{results: make(map[string]models.Result)}
}

func (s *fakeSubmissionStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeSubmissionStore) UpsertResult(result *models.Result) error {
	if existing, ok := s.results[result.EntrantID]; ok {
		existing.RoundLabel = result.RoundLabel
		existing.Score = result.Score
		existing.XCount = result.XCount
		existing.RawSeries = result.RawSeries
		existing.Disqualified = result.Disqualified
		existing.DisqualifiedReason = result.DisqualifiedReason
		existing.JudgeID = result.JudgeID
		existing.UpdatedAt = result.UpdatedAt
		s.results[result.EntrantID] = existing
		*result = existing
		return nil
	}
	if result.ID == "" {
		result.ID = s.id("result")
	}
	s.results[result.EntrantID] = *result
	return nil
}

func (s *fakeSubmissionStore) CurrentRecordForUpdate(disciplineID, categoryID string) (*models.Record, error) {
	for _, record := range s.records {
		if record.DisciplineID == disciplineID && record.CategoryID == categoryID && record.IsCurrent {
			return record, nil
		}
	}
	return nil, nil
}

func (s *fakeSubmissionStore) RetireRecord(record *models.Record) error {
	record.IsCurrent = false
	return nil
}

func (s *fakeSubmissionStore) CreateRecord(record *models.Record) error {
	if record.ID == "" {
		record.ID = s.id("record")
	}
	s.records = append(s.records, record)
	return nil
}

func submissionFixture() (*models.Entrant, *models.Participation) {
	participation := &models.Participation{
		ID:           "part-1",
		EntrantID:    "entrant-1",
		DisciplineID: "disc-1",
		CategoryID:   "cat-1",
		Discipline:   &models.Discipline{ID: "disc-1", Name: "Silueta Metálica .22"},
	}
	entrant := testEntrant()
	entrant.AthleteID = "athlete-1"
	entrant.Competition = &models.Competition{
		ID:        "comp-1",
		Status:    models.StatusInProgress,
		StartDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	entrant.Participations = []*models.Participation{participation}
	return entrant, participation
}

func TestSubmittableParticipationPreconditions(t *testing.T) {
	entrant, participation := submissionFixture()

	got, err := submittableParticipation(entrant)
	require.NoError(t, err)
	assert.Equal(t, participation, got)

	entrant.Competition.Status = models.StatusFinalized
	_, err = submittableParticipation(entrant)
	assert.ErrorIs(t, err, ErrCompetitionClosed)

	entrant.Competition.Status = models.StatusInProgress
	entrant.Participations = nil
	_, err = submittableParticipation(entrant)
	assert.ErrorIs(t, err, ErrNoParticipation)
}

func TestApplySubmissionIsIdempotent(t *testing.T) {
	store := newFakeSubmissionStore()
	entrant, participation := submissionFixture()

	first := testResult("70.5")
	first.VerificationCode = "code-first"
	broken, err := applySubmission(store, entrant, participation, first)
	require.NoError(t, err)
	assert.True(t, broken)

	// Replaying the same payload must end in the same final state: one
	// row, the same score, one record, and the verification code of the
	// first submission returned to the caller.
	replay := testResult("70.5")
	replay.VerificationCode = "code-replay"
	broken, err = applySubmission(store, entrant, participation, replay)
	require.NoError(t, err)
	assert.False(t, broken)

	require.Len(t, store.results, 1)
	stored := store.results[entrant.ID]
	assert.True(t, stored.Score.Equal(decimal.RequireFromString("70.5")))
	assert.Equal(t, "code-first", stored.VerificationCode)
	assert.Equal(t, "code-first", replay.VerificationCode)
	assert.Len(t, store.records, 1)
}

func TestApplySubmissionSkipsRecordsForDisqualified(t *testing.T) {
	store := newFakeSubmissionStore()
	entrant, participation := submissionFixture()

	result := testResult("99")
	result.Disqualified = true
	broken, err := applySubmission(store, entrant, participation, result)
	require.NoError(t, err)

	assert.False(t, broken)
	assert.Len(t, store.results, 1)
	assert.Empty(t, store.records)
}
