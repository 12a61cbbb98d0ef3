package models

// Weapon represents a firearm or air gun owned by an athlete
type Weapon struct {
    ID            string   `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    AthleteID     string   `gorm:"type:uuid;not null;column:athlete_id" json:"athlete_id"`
    Brand         string   `gorm:"type:varchar(50);not null" json:"brand"`
    Model         string   `gorm:"type:varchar(50)" json:"model"`
    Caliber       string   `gorm:"type:varchar(50);not null" json:"caliber"`
    IsAirGun      bool     `gorm:"not null;default:false;column:is_air_gun" json:"is_air_gun"`
    Athlete       *Athlete `gorm:"foreignKey:AthleteID" json:"-"`
}

// Label is the short weapon description used in live updates and reports
func (w *Weapon) Label() string {
    if w.Model == "" {
        return w.Brand
    }
    return w.Brand + " " + w.Model
}
