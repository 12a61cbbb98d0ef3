package scoring

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSilhouette(t *testing.T) {
	// 10*1 + 10*1.5 + 10*2 + 10*2.5 = 70
	series := Series{
		"pajaros":  json.Number("10"),
		"chanchos": json.Number("10"),
		"pavas":    json.Number("10"),
		"carneros": json.Number("10"),
	}

	score, xCount := Compute("silhouette", []Series{series})

	assert.True(t, score.Equal(decimal.RequireFromString("70.0")), "got %s", score)
	assert.Equal(t, 0, xCount)
}

func TestComputeZone(t *testing.T) {
	// 5*5 + 2*4 + 1*3 + 0*2 = 36
	series := Series{
		"impactos_5": json.Number("5"),
		"impactos_4": json.Number("2"),
		"impactos_3": json.Number("1"),
		"impactos_2": json.Number("0"),
	}

	score, _ := Compute("zone", []Series{series})
	assert.True(t, score.Equal(decimal.NewFromInt(36)), "got %s", score)
}

func TestComputeZoneNewFieldNames(t *testing.T) {
	series := Series{
		"zone5": json.Number("5"),
		"zone4": json.Number("2"),
		"zone3": json.Number("1"),
	}

	score, _ := Compute("zone", []Series{series})
	assert.True(t, score.Equal(decimal.NewFromInt(36)), "got %s", score)
}

func TestComputeDirect(t *testing.T) {
	series := Series{"puntaje_total_ronda": json.Number("24.0")}

	score, _ := Compute("direct", []Series{series})
	assert.True(t, score.Equal(decimal.RequireFromString("24.0")), "got %s", score)
}

func TestComputeEmptySeries(t *testing.T) {
	score, xCount := Compute("zone", nil)
	assert.True(t, score.IsZero())
	assert.Equal(t, 0, xCount)

	score, _ = Compute("silhouette", []Series{{}})
	assert.True(t, score.IsZero())
}

func TestComputeMultipleRoundsAndXCount(t *testing.T) {
	rounds := []Series{
		{"puntaje_total_ronda": json.Number("24.5"), "is_x": true},
		{"puntaje_total_ronda": json.Number("25.0")},
		{"puntaje_total_ronda": json.Number("23.5"), "is_x": json.Number("1")},
	}

	score, xCount := Compute("direct", rounds)

	assert.True(t, score.Equal(decimal.RequireFromString("73.0")), "got %s", score)
	assert.Equal(t, 2, xCount)
}

func TestComputeMalformedFieldsCoercedToZero(t *testing.T) {
	series := Series{
		"pajaros":  "not a number",
		"chanchos": json.Number("10"),
		"pavas":    nil,
		"carneros": []string{"garbage"},
	}

	score, _ := Compute("silhouette", []Series{series})

	// Only the valid field counts: 10 * 1.5 = 15
	assert.True(t, score.Equal(decimal.NewFromInt(15)), "got %s", score)
}

func TestComputeIsDeterministicWithoutDrift(t *testing.T) {
	series := Series{
		"pajaros":  json.Number("3"),
		"chanchos": json.Number("7"),
		"pavas":    json.Number("1"),
		"carneros": json.Number("9"),
	}

	first, _ := Compute("silhouette", []Series{series})
	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		score, _ := Compute("silhouette", []Series{series})
		require.True(t, score.Equal(first), "iteration %d diverged: %s", i, score)
		sum = sum.Add(score)
	}

	// 1000 repeated additions of an exact decimal must not drift at all
	assert.True(t, sum.Equal(first.Mul(decimal.NewFromInt(1000))))
}

func TestResolveStrategy(t *testing.T) {
	cases := map[string]string{
		"SILUETA METÁLICA .22": "silhouette",
		"Silueta Metalica 9mm": "silhouette",
		"Metallic Silhouette":  "silhouette",
		"FBI 9MM":              "zone",
		"fbi tránsito":         "zone",
		"ESCOPETA FOSA":        "direct",
		"Bench Rest":           "direct",
		"Hunter":               "direct",
	}

	for name, want := range cases {
		assert.Equal(t, want, ResolveStrategy(name), "name %q", name)
	}
}
