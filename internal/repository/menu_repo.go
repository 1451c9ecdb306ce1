package repository

import (
	"context"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, onlyAvailable bool) ([]model.MenuItem, error)
	Update(ctx context.Context, m *model.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuRepo) List(ctx context.Context, onlyAvailable bool) ([]model.MenuItem, error) {
	var items []model.MenuItem
	q := r.db.WithContext(ctx).Order("category, name")
	if onlyAvailable {
		q = q.Where("available = true")
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *menuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}
