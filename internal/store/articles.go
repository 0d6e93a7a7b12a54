package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mindcare-backend/internal/model"
)

func (s *gormStore) CreateArticle(ctx context.Context, a *model.Article) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (s *gormStore) FindArticleByID(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	err := s.db.WithContext(ctx).
		Preload("Psychologist").Preload("Psychologist.User").
		First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article %d: %w", id, err)
	}
	return &a, nil
}

// ListArticles returns articles in the given status, newest first, or
// all articles when status is empty.
func (s *gormStore) ListArticles(ctx context.Context, status model.ArticleStatus) ([]model.Article, error) {
	q := s.db.WithContext(ctx).
		Preload("Psychologist").Preload("Psychologist.User").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []model.Article
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return list, nil
}

func (s *gormStore) ArticlesByAuthor(ctx context.Context, psychologistID int64) ([]model.Article, error) {
	var list []model.Article
	err := s.db.WithContext(ctx).
		Where("psychologist_id = ?", psychologistID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list author articles: %w", err)
	}
	return list, nil
}

func (s *gormStore) UpdateArticleStatus(ctx context.Context, id int64, status model.ArticleStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update article %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
