package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record represents the standing best score for a (discipline, category)
// pair. Superseded rows are never deleted: is_current is flipped to false
// and the new row points to the old one, forming the record history chain.
// At most one row per pair has is_current = true; the partial unique index
// enforces that even when two first submissions for the pair race, since
// there is no current row to lock yet. The loser's insert fails with a
// unique violation and surfaces as a retryable conflict.
type Record struct {
    ID            string          `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    DisciplineID  string          `gorm:"type:uuid;not null;column:discipline_id;index:idx_record_pair;uniqueIndex:udx_record_current,where:is_current = true" json:"discipline_id"`
    CategoryID    string          `gorm:"type:uuid;not null;column:category_id;index:idx_record_pair;uniqueIndex:udx_record_current,where:is_current = true" json:"category_id"`
    AthleteID     string          `gorm:"type:uuid;not null;column:athlete_id" json:"athlete_id"`
    CompetitionID string          `gorm:"type:uuid;not null;column:competition_id" json:"competition_id"`
    Score         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"score"`
    SetOn         time.Time       `gorm:"type:date;not null;column:set_on" json:"set_on"`
    IsCurrent     bool            `gorm:"not null;default:true;column:is_current" json:"is_current"`
    PredecessorID *string         `gorm:"type:uuid;column:predecessor_id" json:"predecessor_id"`
    Discipline    *Discipline     `gorm:"foreignKey:DisciplineID" json:"discipline,omitempty"`
    Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
    Athlete       *Athlete        `gorm:"foreignKey:AthleteID" json:"athlete,omitempty"`
    Predecessor   *Record         `gorm:"foreignKey:PredecessorID" json:"predecessor,omitempty"`
}
