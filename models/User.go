package models

import "time"

// Roles a user can hold. Judges and staff may publish live results,
// admins additionally manage the competition lifecycle.
const (
    RoleAdmin  = "admin"
    RoleJudge  = "judge"
    RoleStaff  = "staff"
    RoleViewer = "viewer"
)

// User represents an account that can log into the system
type User struct {
    ID            string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Email         string     `gorm:"type:varchar(100);unique;not null" json:"email"`
    Firstname     string     `gorm:"type:varchar(50);not null" json:"firstname"`
    Lastname      string     `gorm:"type:varchar(50);not null" json:"lastname"`
    Password      string     `gorm:"type:varchar(255);not null" json:"-"`
    Role          string     `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
    LastConnected *time.Time `gorm:"type:timestamp" json:"last_connected"`
}

// ValidRole reports whether the given role name is one of the known roles
func ValidRole(role string) bool {
    switch role {
    case RoleAdmin, RoleJudge, RoleStaff, RoleViewer:
        return true
    }
    return false
}

// IsPublisher reports whether the user may push live score updates
func (u *User) IsPublisher() bool {
    return u.Role == RoleJudge || u.Role == RoleStaff || u.Role == RoleAdmin
}
