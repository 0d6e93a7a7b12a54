package model

import "time"

// AppointmentStatus is the lifecycle state of a booked consultation.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that count toward slot conflicts.
// Cancelled appointments do not block rebooking the same timestamp.
var ActiveStatuses = []AppointmentStatus{AppointmentScheduled, AppointmentCompleted}

// Appointment represents one reserved 1-hour consultation slot.
//
// Uniqueness of (psychologist_id, appointment_date_time) among active
// statuses is enforced by a partial unique index created in db.Migrate;
// the index, not the application-level pre-check, is the authoritative
// guard against double-booking.
type Appointment struct {
	ID                  int64             `gorm:"primaryKey" json:"id"`
	PsychologistID      int64             `gorm:"not null;index" json:"psychologistId"`
	PatientID           int64             `gorm:"not null;index" json:"patientId"`
	AppointmentDateTime time.Time         `gorm:"not null" json:"appointmentDateTime"`
	Status              AppointmentStatus `gorm:"size:32;not null;default:'scheduled'" json:"status"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Associations
	Psychologist Psychologist `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Patient      User         `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsActive reports whether the appointment counts toward conflicts.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentCompleted
}
