package model

import "time"

// Role identifies what a user is allowed to do.
type Role string

const (
	RolePatient      Role = "patient"
	RolePsychologist Role = "psychologist"
	RoleAdmin        Role = "admin"
)

// User represents a registered account of any role.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:256;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"size:32;not null;index" json:"role"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
