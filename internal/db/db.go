package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mindcare-backend/config"
	"mindcare-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate runs AutoMigrate for all models and applies the constraint DDL.
// Exposed separately so tests can run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Psychologist{},
		&model.Appointment{},
		&model.Article{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	if err := applyConstraintDDL(db); err != nil {
		return fmt.Errorf("constraint DDL failed: %w", err)
	}
	return nil
}

// applyConstraintDDL installs the partial unique index that serializes
// concurrent bookings of the same slot. First committer wins; every
// later insert for the same (psychologist, timestamp) pair fails with a
// uniqueness violation that the booking service reports as a conflict.
func applyConstraintDDL(db *gorm.DB) error {
	ddl := "CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot " +
		"ON appointments (psychologist_id, appointment_date_time) " +
		"WHERE status IN ('scheduled','completed')"

	if err := db.Exec(ddl).Error; err != nil {
		return fmt.Errorf("DDL failed on %q: %w", ddl, err)
	}
	return nil
}
