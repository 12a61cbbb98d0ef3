package services

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(athleteID, club string, score float64) PlacementRow {
	d := decimal.NewFromFloat(score)
	return PlacementRow{
		AthleteID:   athleteID,
		AthleteName: "Athlete " + athleteID,
		ClubName:    club,
		Score:       d,
		SortKey:     d,
	}
}

func TestQuorumCutoff(t *testing.T) {
	assert.Equal(t, 0, quorumCutoff(0))
	assert.Equal(t, 0, quorumCutoff(1))
	assert.Equal(t, 1, quorumCutoff(2))
	assert.Equal(t, 2, quorumCutoff(3))
	assert.Equal(t, 4, quorumCutoff(4))
	assert.Equal(t, 12, quorumCutoff(12))
}

func TestTwoEntrantsOnlyWinnerEarnsPoints(t *testing.T) {
	acc := newRankingAccumulator()
	acc.addPlacements("FBI 9MM", []PlacementRow{
		row("A", "CTT", 90),
		row("B", "CTI", 85),
	})

	rankings, _ := acc.finalize()
	entries := rankings["FBI 9MM"]
	require.Len(t, entries, 1, "second place must not appear with only two entrants")
	assert.Equal(t, "A", entries[0].AthleteID)
	assert.Equal(t, 10, entries[0].Points)
}

func TestAnnualAccumulationAcrossCompetitions(t *testing.T) {
	// Competition 1: A, B, C, D (all four count, points 10/7/5/4).
	// Competition 2: only A and B (only the winner counts, 10 points).
	acc := newRankingAccumulator()
	acc.addPlacements("Silueta", []PlacementRow{
		row("A", "CTT", 95),
		row("B", "CTI", 90),
		row("C", "CTT", 85),
		row("D", "CTQ", 80),
	})
	acc.addPlacements("Silueta", []PlacementRow{
		row("A", "CTT", 92),
		row("B", "CTI", 88),
	})

	rankings, _ := acc.finalize()
	entries := rankings["Silueta"]
	require.Len(t, entries, 4)

	byID := map[string]RankingEntry{}
	for _, e := range entries {
		byID[e.AthleteID] = e
	}

	assert.Equal(t, 20, byID["A"].Points)
	assert.Equal(t, 7, byID["B"].Points)
	assert.Equal(t, 5, byID["C"].Points)
	assert.Equal(t, 4, byID["D"].Points)
	assert.Equal(t, 2, byID["A"].Events)
	assert.Equal(t, 1, byID["B"].Events)

	assert.Equal(t, 1, byID["A"].Position)
	assert.Equal(t, 2, byID["B"].Position)
	assert.Equal(t, 3, byID["C"].Position)
	assert.Equal(t, 4, byID["D"].Position)
}

func TestPlacementPointsBeyondTable(t *testing.T) {
	acc := newRankingAccumulator()
	rows := []PlacementRow{}
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		rows = append(rows, row(id, "CTT", float64(100-len(rows))))
	}
	acc.addPlacements("Silueta", rows)

	rankings, _ := acc.finalize()
	entries := rankings["Silueta"]
	require.Len(t, entries, 8)
	// Ranks past the table earn a single point each
	assert.Equal(t, 1, entries[6].Points)
	assert.Equal(t, 1, entries[7].Points)
}

func TestClubPodiumPoints(t *testing.T) {
	acc := newRankingAccumulator()
	acc.addPlacements("Silueta", []PlacementRow{
		row("A", "CTT", 95),
		row("B", "CTI", 90),
		row("C", "CTT", 85),
		row("D", "CTQ", 80),
	})

	_, clubs := acc.finalize()
	byName := map[string]int{}
	for _, c := range clubs {
		byName[c.Club] = c.Points
	}

	// Podium only: CTT twice (1st, 3rd), CTI once (2nd), CTQ never (4th)
	assert.Equal(t, 2, byName["CTT"])
	assert.Equal(t, 1, byName["CTI"])
	assert.Equal(t, 0, byName["CTQ"])
}

func TestTiesKeepInputOrder(t *testing.T) {
	acc := newRankingAccumulator()
	acc.addPlacements("Silueta", []PlacementRow{
		row("A", "CTT", 90),
		row("B", "CTI", 90),
		row("C", "CTQ", 90),
		row("D", "CTX", 90),
	})

	rankings, _ := acc.finalize()
	entries := rankings["Silueta"]
	require.Len(t, entries, 4)

	// Equal sort keys place in submission order, deterministically
	assert.Equal(t, "A", entries[0].AthleteID)
	assert.Equal(t, "B", entries[1].AthleteID)
	assert.Equal(t, "C", entries[2].AthleteID)
	assert.Equal(t, "D", entries[3].AthleteID)
	assert.Equal(t, 10, entries[0].Points)
	assert.Equal(t, 7, entries[1].Points)
}

func TestExplicitSortKeyBeatsRawScore(t *testing.T) {
	// B has the lower cumulative score but the better tie-break key
	a := row("A", "CTT", 90)
	b := row("B", "CTI", 89)
	b.SortKey = decimal.NewFromFloat(90.5)

	acc := newRankingAccumulator()
	acc.addPlacements("FBI 9MM", []PlacementRow{a, b, row("C", "CTQ", 80)})

	rankings, _ := acc.finalize()
	entries := rankings["FBI 9MM"]
	require.NotEmpty(t, entries)
	assert.Equal(t, "B", entries[0].AthleteID)
}

func TestSortKeyFromSeries(t *testing.T) {
	score := decimal.NewFromInt(87)

	// No payload: the score itself is the key
	assert.True(t, sortKeyFromSeries(nil, score).Equal(score))

	// Payload without sort_key: still the score
	raw := json.RawMessage(`[{"impactos_5": 10}]`)
	assert.True(t, sortKeyFromSeries(raw, score).Equal(score))

	// Explicit sort_key wins
	raw = json.RawMessage(`[{"impactos_5": 10, "sort_key": 87.12}]`)
	assert.True(t, sortKeyFromSeries(raw, score).Equal(decimal.RequireFromString("87.12")))

	// Garbage payload falls back to the score
	raw = json.RawMessage(`not json`)
	assert.True(t, sortKeyFromSeries(raw, score).Equal(score))
}
