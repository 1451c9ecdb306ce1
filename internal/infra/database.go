package infra

import (
	"fmt"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate. TranslateError is enabled so the unique-index violation on
// users.username surfaces as gorm.ErrDuplicatedKey, which the auth service
// maps to a conflict.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates / updates all tables. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.AttendanceRecord{},
		&model.Employee{},
		&model.Contract{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Notification{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the expiry-notifier cron query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_contracts_active_end_date') THEN
		    CREATE INDEX idx_contracts_active_end_date
		        ON contracts (end_date)
		        WHERE status = 'active';
		  END IF;
		END $$`,
		// Composite index for per-employee day scans (stats, payroll pairing).
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_attendance_employee_recorded') THEN
		    CREATE INDEX idx_attendance_employee_recorded
		        ON attendance_records (employee_id, recorded_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
