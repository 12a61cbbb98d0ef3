package models

// Category represents a category inside a discipline, optionally restricted to one caliber
type Category struct {
    ID             string      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name           string      `gorm:"type:varchar(100);not null" json:"name"`
    DisciplineID   string      `gorm:"type:uuid;not null;column:discipline_id" json:"discipline_id"`
    AllowedCaliber *string     `gorm:"type:varchar(50);column:allowed_caliber" json:"allowed_caliber"`
    Discipline     *Discipline `gorm:"foreignKey:DisciplineID" json:"-"`
}
