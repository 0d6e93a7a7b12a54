package model

import "time"

// ArticleStatus is the moderation state of a published article.
type ArticleStatus string

const (
	ArticlePending  ArticleStatus = "pending"
	ArticleApproved ArticleStatus = "approved"
	ArticleRejected ArticleStatus = "rejected"
)

// Article is a psychologist-authored post. The markdown body is the
// source of truth; HTML is rendered and sanitized on write.
type Article struct {
	ID             int64         `gorm:"primaryKey" json:"id"`
	PsychologistID int64         `gorm:"not null;index" json:"psychologistId"`
	Title          string        `gorm:"size:512;not null" json:"title"`
	Markdown       string        `gorm:"type:text;not null" json:"markdown"`
	HTML           string        `gorm:"type:text;not null" json:"html"`
	Status         ArticleStatus `gorm:"size:32;not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"-"`

	// Associations
	Psychologist Psychologist `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
