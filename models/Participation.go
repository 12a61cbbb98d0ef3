package models

// Participation represents one discipline/category/weapon combination an
// entrant competes in
type Participation struct {
    ID           string      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EntrantID    string      `gorm:"type:uuid;not null;column:entrant_id;uniqueIndex:idx_participation_unique" json:"entrant_id"`
    DisciplineID string      `gorm:"type:uuid;not null;column:discipline_id" json:"discipline_id"`
    CategoryID   string      `gorm:"type:uuid;not null;column:category_id;uniqueIndex:idx_participation_unique" json:"category_id"`
    WeaponID     *string     `gorm:"type:uuid;column:weapon_id" json:"weapon_id"`
    Discipline   *Discipline `gorm:"foreignKey:DisciplineID" json:"discipline"`
    Category     *Category   `gorm:"foreignKey:CategoryID" json:"category"`
    Weapon       *Weapon     `gorm:"foreignKey:WeaponID" json:"weapon"`
}
