package models

// Discipline represents a shooting discipline (silhouette, FBI course, shotgun...)
// ScoringStrategy is resolved once when the discipline is created and stored
// as data; nothing re-derives it from the discipline name afterwards.
type Discipline struct {
    ID              string      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name            string      `gorm:"type:varchar(100);unique;not null" json:"name"`
    ScoringStrategy string      `gorm:"type:varchar(20);not null;column:scoring_strategy" json:"scoring_strategy"`
    UsesLiveAmmo    bool        `gorm:"not null;default:true;column:uses_live_ammo" json:"uses_live_ammo"`
    Categories      []*Category `gorm:"foreignKey:DisciplineID" json:"categories"`
}
