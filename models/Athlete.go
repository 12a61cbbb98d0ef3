package models

// Athlete represents a registered shooter. Guests can compete but never
// enter the annual rankings.
type Athlete struct {
    ID        string  `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Firstname string  `gorm:"type:varchar(50);not null" json:"firstname"`
    Lastname  string  `gorm:"type:varchar(100);not null" json:"lastname"`
    ClubID    *string `gorm:"type:uuid;column:club_id" json:"club_id"`
    IsGuest   bool    `gorm:"not null;default:false;column:is_guest" json:"is_guest"`
    Club      *Club   `gorm:"foreignKey:ClubID" json:"club"`
}

// DisplayName is the name shown on scoreboards and reports
func (a *Athlete) DisplayName() string {
    return a.Firstname + " " + a.Lastname
}
