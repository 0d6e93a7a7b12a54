package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindcare-backend/internal/model"
	"mindcare-backend/internal/schedule"
	"mindcare-backend/internal/store"
)

// PersonSummary denormalizes the display fields of a counterpart.
type PersonSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AppointmentView is one appointment shaped for API responses.
type AppointmentView struct {
	ID                  int64                   `json:"id"`
	AppointmentDateTime time.Time               `json:"appointmentDateTime"`
	Status              model.AppointmentStatus `json:"status"`
	Psychologist        *PersonSummary          `json:"psychologist,omitempty"`
	Patient             *PersonSummary          `json:"patient,omitempty"`
}

// PatientView splits a patient's appointments into upcoming scheduled
// sessions and everything else.
type PatientView struct {
	Active   []AppointmentView `json:"active"`
	Archived []AppointmentView `json:"archived"`
}

// PatientAppointments partitions the caller's appointments: active
// means scheduled and not yet started, archived is past or
// non-scheduled.
func (s *Service) PatientAppointments(ctx context.Context, patientID int64) (*PatientView, error) {
	appts, err := s.store.AppointmentsByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient appointments: %w", err)
	}

	now := s.clock().UTC()
	view := &PatientView{
		Active:   []AppointmentView{},
		Archived: []AppointmentView{},
	}
	for _, a := range appts {
		v := AppointmentView{
			ID:                  a.ID,
			AppointmentDateTime: a.AppointmentDateTime,
			Status:              a.Status,
			Psychologist: &PersonSummary{
				ID:    a.Psychologist.ID,
				Name:  a.Psychologist.User.Name,
				Email: a.Psychologist.User.Email,
			},
		}
		if a.Status == model.AppointmentScheduled && !a.AppointmentDateTime.Before(now) {
			view.Active = append(view.Active, v)
		} else {
			view.Archived = append(view.Archived, v)
		}
	}
	return view, nil
}

// RosterView is a psychologist's appointment list, flat and grouped by
// calendar day for the daily roster.
type RosterView struct {
	Appointments       []AppointmentView            `json:"appointments"`
	AppointmentsByDate map[string][]AppointmentView `json:"appointmentsByDate"`
}

// PsychologistRoster returns the roster for the psychologist profile
// owned by userID. ErrNoProfile when the caller has no profile.
func (s *Service) PsychologistRoster(ctx context.Context, userID int64) (*RosterView, error) {
	profile, err := s.store.FindPsychologistByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("load psychologist profile: %w", err)
	}

	appts, err := s.store.AppointmentsByPsychologist(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load psychologist appointments: %w", err)
	}

	view := &RosterView{
		Appointments:       []AppointmentView{},
		AppointmentsByDate: map[string][]AppointmentView{},
	}
	for _, a := range appts {
		v := AppointmentView{
			ID:                  a.ID,
			AppointmentDateTime: a.AppointmentDateTime,
			Status:              a.Status,
			Patient: &PersonSummary{
				ID:    a.Patient.ID,
				Name:  a.Patient.Name,
				Email: a.Patient.Email,
			},
		}
		view.Appointments = append(view.Appointments, v)
		key := a.AppointmentDateTime.Format(schedule.DateKey)
		view.AppointmentsByDate[key] = append(view.AppointmentsByDate[key], v)
	}
	return view, nil
}
