package store

import (
	"context"
	"fmt"
	"time"

	"mindcare-backend/internal/model"
)

// CreateAppointment persists a new appointment. A uniqueness violation
// from the partial index is reported as ErrDuplicateSlot so the caller
// can surface it as a booking conflict rather than a server error.
func (s *gormStore) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// ActiveAppointmentsFrom returns, in one query, every scheduled or
// completed appointment for the psychologist starting at or after from.
func (s *gormStore) ActiveAppointmentsFrom(ctx context.Context, psychologistID int64, from time.Time) ([]model.Appointment, error) {
	var list []model.Appointment
	err := s.db.WithContext(ctx).
		Where("psychologist_id = ? AND status IN ? AND appointment_date_time >= ?",
			psychologistID, model.ActiveStatuses, from).
		Order("appointment_date_time").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active appointments: %w", err)
	}
	return list, nil
}

// HasActiveAppointmentAt is the fast-path conflict pre-check before a
// booking insert. The partial unique index remains the final word.
func (s *gormStore) HasActiveAppointmentAt(ctx context.Context, psychologistID int64, at time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("psychologist_id = ? AND status IN ? AND appointment_date_time = ?",
			psychologistID, model.ActiveStatuses, at).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot conflict: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) AppointmentsByPatient(ctx context.Context, patientID int64) ([]model.Appointment, error) {
	var list []model.Appointment
	err := s.db.WithContext(ctx).
		Preload("Psychologist").Preload("Psychologist.User").
		Where("patient_id = ?", patientID).
		Order("appointment_date_time").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient appointments: %w", err)
	}
	return list, nil
}

func (s *gormStore) AppointmentsByPsychologist(ctx context.Context, psychologistID int64) ([]model.Appointment, error) {
	var list []model.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Where("psychologist_id = ?", psychologistID).
		Order("appointment_date_time").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch psychologist appointments: %w", err)
	}
	return list, nil
}
