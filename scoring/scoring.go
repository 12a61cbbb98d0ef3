package scoring

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// Strategies a discipline can be scored with
const (
	StrategySilhouette = "silhouette"
	StrategyZone       = "zone"
	StrategyDirect     = "direct"
)

// Series is one judge-submitted batch of raw shot tallies for a round,
// as decoded from the submission payload (kind -> tally).
type Series map[string]interface{}

// Silhouette animal banks and their multipliers: pajaro=1, chancho=1.5,
// pava=2, carnero=2.5.
var silhouetteFactors = []struct {
	key    string
	factor decimal.Decimal
}{
	{"pajaros", decimal.NewFromFloat(1.0)},
	{"chanchos", decimal.NewFromFloat(1.5)},
	{"pavas", decimal.NewFromFloat(2.0)},
	{"carneros", decimal.NewFromFloat(2.5)},
}

// Zone-graded targets: a hit is worth the number of its zone. The judge UI
// historically sent impactos_N, newer clients send zoneN; both are accepted.
var zoneFields = []struct {
	keys  []string
	value decimal.Decimal
}{
	{[]string{"impactos_5", "zone5"}, decimal.NewFromInt(5)},
	{[]string{"impactos_4", "zone4"}, decimal.NewFromInt(4)},
	{[]string{"impactos_3", "zone3"}, decimal.NewFromInt(3)},
	{[]string{"impactos_2", "zone2"}, decimal.NewFromInt(2)},
}

// Keys carrying the pre-totaled round score for direct-scored disciplines
// (shotgun, bench rest...). Legacy key first.
var directKeys = []string{"puntaje_total_ronda", "total_for_round"}

// Compute turns the submitted series of one or more rounds into the
// cumulative score for the given scoring strategy, plus the count of rounds
// flagged as X (perfect) used as a secondary tie-break signal.
//
// Compute is pure: no I/O beyond data-quality warnings, identical input
// always yields the identical decimal. Missing fields count as 0 and
// malformed fields are coerced to 0 instead of failing the submission.
func Compute(strategy string, seriesList []Series) (decimal.Decimal, int) {
	total := decimal.Zero
	xCount := 0

	for _, series := range seriesList {
		total = total.Add(computeRound(strategy, series))
		if truthy(series["is_x"]) {
			xCount++
		}
	}

	return total, xCount
}

// computeRound scores a single round
func computeRound(strategy string, series Series) decimal.Decimal {
	if len(series) == 0 {
		return decimal.Zero
	}

	score := decimal.Zero

	switch strategy {
	case StrategySilhouette:
		for _, f := range silhouetteFactors {
			score = score.Add(numField(series, f.key).Mul(f.factor))
		}
	case StrategyZone:
		for _, z := range zoneFields {
			score = score.Add(firstNumField(series, z.keys).Mul(z.value))
		}
	default:
		score = firstNumField(series, directKeys)
	}

	return score
}

// numField reads one numeric field from the series, coercing missing or
// malformed values to 0
func numField(series Series, key string) decimal.Decimal {
	raw, ok := series[key]
	if !ok || raw == nil {
		return decimal.Zero
	}

	switch v := raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err == nil {
			return d
		}
	}

	log.Printf("scoring: malformed value for field %q, counting as 0: %v", key, raw)
	return decimal.Zero
}

func firstNumField(series Series, keys []string) decimal.Decimal {
	for _, key := range keys {
		if _, ok := series[key]; ok {
			return numField(series, key)
		}
	}
	return decimal.Zero
}

// truthy interprets the is_x round flag across the formats judges have sent
func truthy(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case json.Number:
		return v.String() != "0" && v.String() != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v == "true" || v == "1"
	}
	return false
}

// ResolveStrategy maps a discipline name to its scoring strategy. It runs
// once when a discipline is registered or seeded; the result is stored on
// the discipline row and used from there on every submission.
func ResolveStrategy(name string) string {
	upper := strings.ToUpper(name)

	if strings.Contains(upper, "SILUETA") ||
		strings.Contains(upper, "SILHOUETTE") ||
		strings.Contains(upper, "METÁLICA") ||
		strings.Contains(upper, "METALICA") {
		return StrategySilhouette
	}
	if strings.Contains(upper, "FBI") {
		return StrategyZone
	}
	return StrategyDirect
}
