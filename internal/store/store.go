package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"mindcare-backend/internal/model"
)

// ErrDuplicateSlot is returned by CreateAppointment when the partial
// unique index on (psychologist_id, appointment_date_time) rejects the
// insert. It is the storage-level signal that another booking for the
// same slot committed first.
var ErrDuplicateSlot = errors.New("appointment slot already taken")

// ErrNotFound is returned by single-record lookups with no match.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Users
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id int64) (*model.User, error)

	// Psychologists
	CreatePsychologist(ctx context.Context, p *model.Psychologist) error
	FindPsychologistByID(ctx context.Context, id int64) (*model.Psychologist, error)
	FindPsychologistByUserID(ctx context.Context, userID int64) (*model.Psychologist, error)
	ListPsychologists(ctx context.Context, status model.PsychologistStatus) ([]model.Psychologist, error)
	UpdatePsychologistStatus(ctx context.Context, id int64, status model.PsychologistStatus) error

	// Appointments
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	ActiveAppointmentsFrom(ctx context.Context, psychologistID int64, from time.Time) ([]model.Appointment, error)
	HasActiveAppointmentAt(ctx context.Context, psychologistID int64, at time.Time) (bool, error)
	AppointmentsByPatient(ctx context.Context, patientID int64) ([]model.Appointment, error)
	AppointmentsByPsychologist(ctx context.Context, psychologistID int64) ([]model.Appointment, error)

	// Articles
	CreateArticle(ctx context.Context, a *model.Article) error
	FindArticleByID(ctx context.Context, id int64) (*model.Article, error)
	ListArticles(ctx context.Context, status model.ArticleStatus) ([]model.Article, error)
	ArticlesByAuthor(ctx context.Context, psychologistID int64) ([]model.Article, error)
	UpdateArticleStatus(ctx context.Context, id int64, status model.ArticleStatus) error

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string, userID int64) error
	SubscriptionsForUser(ctx context.Context, userID int64) ([]model.PushSubscription, error)

	// Admin
	Stats(ctx context.Context) (*Stats, error)
}

// Stats is the aggregate counters surfaced on the admin dashboard.
type Stats struct {
	Users                 int64 `json:"users"`
	Patients              int64 `json:"patients"`
	ApprovedPsychologists int64 `json:"approvedPsychologists"`
	PendingPsychologists  int64 `json:"pendingPsychologists"`
	ScheduledAppointments int64 `json:"scheduledAppointments"`
	PendingArticles       int64 `json:"pendingArticles"`
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// isUniqueViolation matches the duplicate-key errors produced by the
// postgres and sqlite drivers. GORM only translates these with the
// TranslateError option enabled, so the message check covers both.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
