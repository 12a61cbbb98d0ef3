package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Result holds the single authoritative score of one entrant. There is at
// most one row per entrant: resubmissions overwrite the score, they never
// append a second row. The score is always recomputed in full from the
// submitted series, never incremented, and is stored as an exact decimal.
type Result struct {
    ID                   string          `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EntrantID            string          `gorm:"type:uuid;not null;uniqueIndex;column:entrant_id" json:"entrant_id"`
    RoundLabel           string          `gorm:"type:varchar(50);not null;column:round_label" json:"round_label"`
    Score                decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"score"`
    XCount               int             `gorm:"not null;default:0;column:x_count" json:"x_count"`
    RawSeries            json.RawMessage `gorm:"type:jsonb;not null;default:'[]';column:raw_series" json:"raw_series"`
    Disqualified         bool            `gorm:"not null;default:false" json:"disqualified"`
    DisqualifiedReason   *string         `gorm:"type:varchar(255);column:disqualified_reason" json:"disqualified_reason"`
    VerificationCode     string          `gorm:"type:uuid;unique;not null;column:verification_code" json:"verification_code"`
    JudgeID              *string         `gorm:"type:uuid;column:judge_id" json:"judge_id"`
    UpdatedAt            time.Time       `gorm:"type:timestamp;not null" json:"updated_at"`
    Entrant              *Entrant        `gorm:"foreignKey:EntrantID" json:"-"`
}
