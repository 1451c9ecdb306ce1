package repository

import (
	"context"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractStats struct {
	Total         int64
	Active        int64
	ExpiringIn30d int64
	Expired       int64
}

type ContractRepository interface {
	Create(ctx context.Context, c *model.Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	// FindActiveByEmployee returns the employee's currently active contract.
	FindActiveByEmployee(ctx context.Context, employeeID string) (*model.Contract, error)
	List(ctx context.Context) ([]model.Contract, error)
	Update(ctx context.Context, c *model.Contract) error
	// ListExpiringWithin returns active contracts whose end date is at most
	// d days away, including contracts already past their end date that the
	// cron has not marked expired yet.
	ListExpiringWithin(ctx context.Context, d int) ([]model.Contract, error)
	Stats(ctx context.Context) (*ContractStats, error)
}

type contractRepo struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) ContractRepository { return &contractRepo{db: db} }

func (r *contractRepo) Create(ctx context.Context, c *model.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contractRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var c model.Contract
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contractRepo) FindActiveByEmployee(ctx context.Context, employeeID string) (*model.Contract, error) {
	var c model.Contract
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.ContractActive).
		Order("end_date DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contractRepo) List(ctx context.Context) ([]model.Contract, error) {
	var cs []model.Contract
	err := r.db.WithContext(ctx).Order("end_date").Find(&cs).Error
	return cs, err
}

func (r *contractRepo) Update(ctx context.Context, c *model.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *contractRepo) ListExpiringWithin(ctx context.Context, d int) ([]model.Contract, error) {
	// No lower bound: past-due contracts must keep surfacing until the
	// cron marks them expired.
	limit := time.Now().AddDate(0, 0, d)
	var cs []model.Contract
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", model.ContractActive, limit).
		Order("end_date").Find(&cs).Error
	return cs, err
}

func (r *contractRepo) Stats(ctx context.Context) (*ContractStats, error) {
	var s ContractStats
	db := r.db.WithContext(ctx).Model(&model.Contract{})
	if err := db.Count(&s.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Contract{}).
		Where("status = ?", model.ContractActive).Count(&s.Active).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&model.Contract{}).
		Where("status = ? AND end_date >= ? AND end_date <= ?",
			model.ContractActive, now, now.AddDate(0, 0, 30)).
		Count(&s.ExpiringIn30d).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Contract{}).
		Where("status = ?", model.ContractExpired).Count(&s.Expired).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
