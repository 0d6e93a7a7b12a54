package store

import (
	"context"
	"fmt"

	"mindcare-backend/internal/model"
)

// Stats aggregates the admin dashboard counters. Each counter is a
// single COUNT query; the table sizes involved are small.
func (s *gormStore) Stats(ctx context.Context) (*Stats, error) {
	out := &Stats{}
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		count func() error
	}{
		{&out.Users, func() error {
			return db.Model(&model.User{}).Count(&out.Users).Error
		}},
		{&out.Patients, func() error {
			return db.Model(&model.User{}).Where("role = ?", model.RolePatient).Count(&out.Patients).Error
		}},
		{&out.ApprovedPsychologists, func() error {
			return db.Model(&model.Psychologist{}).Where("status = ?", model.PsychologistApproved).Count(&out.ApprovedPsychologists).Error
		}},
		{&out.PendingPsychologists, func() error {
			return db.Model(&model.Psychologist{}).Where("status = ?", model.PsychologistPending).Count(&out.PendingPsychologists).Error
		}},
		{&out.ScheduledAppointments, func() error {
			return db.Model(&model.Appointment{}).Where("status = ?", model.AppointmentScheduled).Count(&out.ScheduledAppointments).Error
		}},
		{&out.PendingArticles, func() error {
			return db.Model(&model.Article{}).Where("status = ?", model.ArticlePending).Count(&out.PendingArticles).Error
		}},
	}

	for _, c := range counts {
		if err := c.count(); err != nil {
			return nil, fmt.Errorf("failed to aggregate stats: %w", err)
		}
	}
	return out, nil
}
