package repository

import (
	"context"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, username string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, username string) error
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, username string) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").Limit(100).Find(&ns).Error
	return ns, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID, username string) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND username = ?", id, username).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
