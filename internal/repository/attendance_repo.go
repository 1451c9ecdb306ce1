package repository

import (
	"context"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"gorm.io/gorm"
)

// AttendanceRepository is append-only: records are created and read, never
// updated or deleted.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	ListAll(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error)
	// ListRange returns records with from <= recorded_at < to, oldest first.
	ListRange(ctx context.Context, from, to time.Time) ([]model.AttendanceRecord, error)
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *attendanceRepo) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).Order("recorded_at DESC").Find(&recs).Error
	return recs, err
}

func (r *attendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("recorded_at DESC").Find(&recs).Error
	return recs, err
}

func (r *attendanceRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("recorded_at >= ? AND recorded_at < ?", from, to).
		Order("recorded_at").Find(&recs).Error
	return recs, err
}
