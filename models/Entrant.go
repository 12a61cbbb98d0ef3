package models

// Entrant represents one athlete's enrollment in one competition. The club
// is captured at enrollment time: if the athlete changes club later, this
// row keeps the club they shot for.
type Entrant struct {
    ID             string           `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    CompetitionID  string           `gorm:"type:uuid;not null;column:competition_id;uniqueIndex:idx_entrant_unique" json:"competition_id"`
    AthleteID      string           `gorm:"type:uuid;not null;column:athlete_id;uniqueIndex:idx_entrant_unique" json:"athlete_id"`
    ClubID         *string          `gorm:"type:uuid;column:club_id" json:"club_id"`
    Competition    *Competition     `gorm:"foreignKey:CompetitionID" json:"-"`
    Athlete        *Athlete         `gorm:"foreignKey:AthleteID" json:"athlete"`
    Club           *Club            `gorm:"foreignKey:ClubID" json:"club"`
    Participations []*Participation `gorm:"foreignKey:EntrantID" json:"participations"`
}

// PrimaryParticipation returns the participation a score submission is applied
// to. When an entrant signed up for several disciplines the first recorded one
// wins; submissions cannot target a specific participation yet.
func (e *Entrant) PrimaryParticipation() *Participation {
    if len(e.Participations) == 0 {
        return nil
    }
    return e.Participations[0]
}
