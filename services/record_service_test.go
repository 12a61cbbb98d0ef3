package services

import (
	"api/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSupersedeWithoutStandingRecord(t *testing.T) {
	assert.True(t, ShouldSupersede(nil, decimal.Zero))
	assert.True(t, ShouldSupersede(nil, decimal.NewFromInt(70)))
}

func TestShouldSupersedeStrictlyGreater(t *testing.T) {
	current := &models.Record{Score: decimal.RequireFromString("70.00")}

	assert.True(t, ShouldSupersede(current, decimal.RequireFromString("70.01")))
	assert.False(t, ShouldSupersede(current, decimal.RequireFromString("69.99")))
}

func TestShouldSupersedeTieKeepsHolder(t *testing.T) {
	current := &models.Record{Score: decimal.RequireFromString("70.00")}

	// An equal score never takes the record away
	assert.False(t, ShouldSupersede(current, decimal.RequireFromString("70.00")))
	assert.False(t, ShouldSupersede(current, decimal.RequireFromString("70.0")))
}

func TestConsiderRecordOpensAndExtendsTheChain(t *testing.T) {
	store := newFakeSubmissionStore()
	holder := func(athleteID string) RecordHolder {
		return RecordHolder{
			AthleteID:     athleteID,
			CompetitionID: "comp-1",
			SetOn:         time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		}
	}

	// first score for the pair opens the chain
	broken, previous, err := considerRecord(store, "disc-1", "cat-1", decimal.RequireFromString("70.5"), holder("a1"))
	require.NoError(t, err)
	assert.True(t, broken)
	assert.Nil(t, previous)

	// an equal score keeps the holder and writes nothing
	broken, previous, err = considerRecord(store, "disc-1", "cat-1", decimal.RequireFromString("70.50"), holder("a2"))
	require.NoError(t, err)
	assert.False(t, broken)
	require.NotNil(t, previous)
	assert.Equal(t, "a1", previous.AthleteID)
	assert.Len(t, store.records, 1)

	// a strictly greater score retires the old row and links back to it
	broken, previous, err = considerRecord(store, "disc-1", "cat-1", decimal.RequireFromString("71"), holder("a2"))
	require.NoError(t, err)
	assert.True(t, broken)
	require.NotNil(t, previous)

	var current *models.Record
	currents := 0
	for _, record := range store.records {
		if record.IsCurrent {
			currents++
			current = record
		}
	}
	require.Equal(t, 1, currents)
	assert.Equal(t, "a2", current.AthleteID)
	require.NotNil(t, current.PredecessorID)
	assert.Equal(t, previous.ID, *current.PredecessorID)
	assert.False(t, previous.IsCurrent)
	assert.Len(t, store.records, 2)
}

func TestConsiderRecordPairsAreIndependent(t *testing.T) {
	store := newFakeSubmissionStore()
	holder := RecordHolder{AthleteID: "a1", CompetitionID: "comp-1", SetOn: time.Now()}

	_, _, err := considerRecord(store, "disc-1", "cat-1", decimal.NewFromInt(50), holder)
	require.NoError(t, err)
	broken, previous, err := considerRecord(store, "disc-1", "cat-2", decimal.NewFromInt(10), holder)
	require.NoError(t, err)

	// a lower score still opens the chain of an untouched pair
	assert.True(t, broken)
	assert.Nil(t, previous)
	assert.Len(t, store.records, 2)
}
