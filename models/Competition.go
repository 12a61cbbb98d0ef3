package models

import "time"

// Lifecycle states of a competition. Transitions are one-way:
// Upcoming -> InProgress -> Finalized. Finalized is terminal and
// closes score submission for good.
const (
    StatusUpcoming   = "Upcoming"
    StatusInProgress = "InProgress"
    StatusFinalized  = "Finalized"
)

// Competition represents one shooting event with its enrolled entrants
type Competition struct {
    ID        string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name      string     `gorm:"type:varchar(200);not null" json:"name"`
    StartDate time.Time  `gorm:"type:date;not null;column:start_date" json:"start_date"`
    EndDate   time.Time  `gorm:"type:date;not null;column:end_date" json:"end_date"`
    Status    string     `gorm:"type:varchar(20);not null;default:'Upcoming'" json:"status"`
    Entrants  []*Entrant `gorm:"foreignKey:CompetitionID" json:"entrants,omitempty"`
}

// NextStatus returns the status following s, or "" when s is terminal
func NextStatus(s string) string {
    switch s {
    case StatusUpcoming:
        return StatusInProgress
    case StatusInProgress:
        return StatusFinalized
    }
    return ""
}
