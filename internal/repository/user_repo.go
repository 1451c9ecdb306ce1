package repository

import (
	"context"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByStatus(ctx context.Context, status string) ([]model.User, error)
	// UpdateLocked loads the row under a SELECT ... FOR UPDATE lock, applies
	// fn, and saves — serializing concurrent mutations of the same account.
	UpdateLocked(ctx context.Context, username string, fn func(u *model.User) error) error
	// DeleteLocked removes the account under the same per-username lock.
	DeleteLocked(ctx context.Context, username string) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func (r *userRepo) ListByStatus(ctx context.Context, status string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at").Find(&users).Error
	return users, err
}

func (r *userRepo) UpdateLocked(ctx context.Context, username string, fn func(u *model.User) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ?", username).First(&u).Error; err != nil {
			return err
		}
		if err := fn(&u); err != nil {
			return err
		}
		return tx.Save(&u).Error
	})
}

func (r *userRepo) DeleteLocked(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ?", username).First(&u).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}
