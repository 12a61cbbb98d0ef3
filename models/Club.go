package models

// Club represents a shooting club athletes belong to
type Club struct {
    ID   string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name string `gorm:"type:varchar(100);unique;not null" json:"name"`
    City string `gorm:"type:varchar(100)" json:"city"`
}
