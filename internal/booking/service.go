// Package booking implements the appointment availability and booking
// engine: computing bookable slots for a psychologist and reserving one
// for a patient without ever double-booking.
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

// Failure modes surfaced to the HTTP layer. Each maps to exactly one
// response status; anything else is an internal error.
var (
	ErrInvalidInput         = errors.New("psychologistId and appointmentDateTime are required")
	ErrOffGrid              = errors.New("appointmentDateTime is outside bookable hours")
	ErrNotPatient           = errors.New("only patients can book appointments")
	ErrPsychologistNotFound = errors.New("psychologist not found")
	ErrSlotTaken            = errors.New("this time slot is already booked")
	ErrPastTimestamp        = errors.New("appointmentDateTime must be in the future")
	ErrNoProfile            = errors.New("psychologist profile not found")
)

// Clock supplies the current time. Injected so slot generation and
// booking validation are deterministic under test.
type Clock func() time.Time

// Notifier dispatches a fire-and-forget booking notice. Failures are
// the notifier's own problem and never reach the booking caller.
type Notifier interface {
	Dispatch(appointmentID int64)
}

// Service is the availability and booking engine.
type Service struct {
	store    store.Store
	rules    schedule.Rules
	clock    Clock
	notifier Notifier
}

// NewService creates the engine. notifier may be nil.
func NewService(s store.Store, rules schedule.Rules, clock Clock, notifier Notifier) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{store: s, rules: rules, clock: clock, notifier: notifier}
}

// Availability is the slot listing for one psychologist: the flat
// ascending sequence plus the same slots grouped by calendar day.
type Availability struct {
	Slots       []time.Time
	SlotsByDate map[string][]time.Time
}

// AvailableSlots returns the candidate grid minus already-booked slots
// for an approved psychologist. Read-only.
func (s *Service) AvailableSlots(ctx context.Context, psychologistID int64) (*Availability, error) {
	if _, err := s.approvedPsychologist(ctx, psychologistID); err != nil {
		return nil, err
	}

	now := s.clock().UTC()

	booked, err := s.store.ActiveAppointmentsFrom(ctx, psychologistID, now)
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}

	// Booked timestamps are compared as epoch milliseconds so that
	// driver-dependent precision or offset differences cannot make an
	// occupied slot look free.
	taken := make(map[int64]struct{}, len(booked))
	for _, a := range booked {
		taken[a.AppointmentDateTime.UnixMilli()] = struct{}{}
	}

	var free []time.Time
	for _, slot := range schedule.Generate(now, s.rules) {
		if _, ok := taken[slot.UnixMilli()]; ok {
			continue
		}
		free = append(free, slot)
	}

	return &Availability{
		Slots:       free,
		SlotsByDate: schedule.GroupByDate(free),
	}, nil
}

// Request is one booking attempt. Role comes from the authenticated
// caller, never from the request body.
type Request struct {
	PsychologistID int64
	PatientID      int64
	Role           model.Role
	When           time.Time
}

// Book reserves one slot for one patient. Preconditions are checked in
// order, each with its own failure mode; the storage-level unique index
// is the authoritative guard against concurrent bookings of the same
// slot, so a duplicate insert is reported as ErrSlotTaken exactly like
// the pre-check.
func (s *Service) Book(ctx context.Context, req Request) (*model.Appointment, error) {
	if req.PsychologistID <= 0 || req.When.IsZero() {
		return nil, ErrInvalidInput
	}
	when := req.When.UTC()
	if !schedule.OnGrid(when, s.rules) {
		return nil, ErrOffGrid
	}

	if req.Role != model.RolePatient {
		return nil, ErrNotPatient
	}

	if _, err := s.approvedPsychologist(ctx, req.PsychologistID); err != nil {
		return nil, err
	}

	conflict, err := s.store.HasActiveAppointmentAt(ctx, req.PsychologistID, when)
	if err != nil {
		return nil, fmt.Errorf("conflict pre-check: %w", err)
	}
	if conflict {
		return nil, ErrSlotTaken
	}

	if !when.After(s.clock().UTC()) {
		return nil, ErrPastTimestamp
	}

	appt := &model.Appointment{
		PsychologistID:      req.PsychologistID,
		PatientID:           req.PatientID,
		AppointmentDateTime: when,
		Status:              model.AppointmentScheduled,
	}
	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, store.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("persist appointment: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Dispatch(appt.ID)
	}
	return appt, nil
}

func (s *Service) approvedPsychologist(ctx context.Context, id int64) (*model.Psychologist, error) {
	p, err := s.store.FindPsychologistByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPsychologistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load psychologist: %w", err)
	}
	if p.Status != model.PsychologistApproved {
		return nil, ErrPsychologistNotFound
	}
	return p, nil
}
