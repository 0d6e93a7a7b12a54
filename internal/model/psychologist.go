package model

import "time"

// PsychologistStatus is the moderation state of a psychologist profile.
// Only approved profiles are browsable and bookable.
type PsychologistStatus string

const (
	PsychologistPending  PsychologistStatus = "pending"
	PsychologistApproved PsychologistStatus = "approved"
	PsychologistRejected PsychologistStatus = "rejected"
)

// Psychologist is the professional profile attached to a user account
// with the psychologist role.
type Psychologist struct {
	ID              int64              `gorm:"primaryKey" json:"id"`
	UserID          int64              `gorm:"uniqueIndex;not null" json:"userId"`
	Specialization  string             `gorm:"size:256" json:"specialization"`
	Bio             string             `gorm:"type:text" json:"bio"`
	ExperienceYears int                `json:"experienceYears"`
	PricePerHour    int                `json:"pricePerHour"`
	Status          PsychologistStatus `gorm:"size:32;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
