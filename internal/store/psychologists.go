package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mindcare-backend/internal/model"
)

func (s *gormStore) CreatePsychologist(ctx context.Context, p *model.Psychologist) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create psychologist profile: %w", err)
	}
	return nil
}

func (s *gormStore) FindPsychologistByID(ctx context.Context, id int64) (*model.Psychologist, error) {
	var p model.Psychologist
	err := s.db.WithContext(ctx).Preload("User").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find psychologist %d: %w", id, err)
	}
	return &p, nil
}

func (s *gormStore) FindPsychologistByUserID(ctx context.Context, userID int64) (*model.Psychologist, error) {
	var p model.Psychologist
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find psychologist for user %d: %w", userID, err)
	}
	return &p, nil
}

// ListPsychologists returns profiles in the given status, or all
// profiles when status is empty.
func (s *gormStore) ListPsychologists(ctx context.Context, status model.PsychologistStatus) ([]model.Psychologist, error) {
	q := s.db.WithContext(ctx).Preload("User").Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []model.Psychologist
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list psychologists: %w", err)
	}
	return list, nil
}

func (s *gormStore) UpdatePsychologistStatus(ctx context.Context, id int64, status model.PsychologistStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Psychologist{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update psychologist %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
