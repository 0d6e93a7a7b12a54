package store

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mindcare-backend/internal/model"
)

// newMockDB opens a gorm connection over sqlmock so tests can assert
// the exact SQL sent to postgres.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestActiveAppointmentsFrom_SQL(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	slot := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "appointments" WHERE psychologist_id = $1 AND status IN ($2,$3) AND appointment_date_time >= $4 ORDER BY appointment_date_time`)).
		WithArgs(int64(7), "scheduled", "completed", from).
		WillReturnRows(sqlmock.NewRows([]string{"id", "psychologist_id", "patient_id", "appointment_date_time", "status"}).
			AddRow(1, 7, 3, slot, "scheduled"))

	list, err := s.ActiveAppointmentsFrom(context.Background(), 7, from)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.AppointmentScheduled, list[0].Status)
	assert.True(t, list[0].AppointmentDateTime.Equal(slot))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePsychologistStatus_SQL(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "psychologists" SET "status"=$1,"updated_at"=$2 WHERE id = $3`)).
		WithArgs("approved", anyArg{}, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.UpdatePsychologistStatus(context.Background(), 5, model.PsychologistApproved)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// anyArg is a helper for sqlmock to match any argument.
type anyArg struct{}

// Match satisfies the sqlmock.Argument interface
func (anyArg) Match(v driver.Value) bool {
	return true
}
