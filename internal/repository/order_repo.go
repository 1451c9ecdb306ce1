package repository

import (
	"context"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	// Create persists the order and its items in one transaction.
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, status string) ([]model.Order, error)
	// UpdateStatusLocked applies fn to the row under a FOR UPDATE lock so two
	// concurrent status changes cannot interleave.
	UpdateStatusLocked(ctx context.Context, id uuid.UUID, fn func(o *model.Order) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, status string) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatusLocked(ctx context.Context, id uuid.UUID, fn func(o *model.Order) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, id).Error; err != nil {
			return err
		}
		if err := fn(&o); err != nil {
			return err
		}
		return tx.Save(&o).Error
	})
}
