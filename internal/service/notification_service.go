package service

import (
	"context"
	"errors"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService interface {
	// List returns the caller's most recent notifications.
	List(ctx context.Context, username string) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, username string, id uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, username string) ([]dto.NotificationResponse, error) {
	ns, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, apierror.Unavailable("notification store unavailable")
	}
	resp := make([]dto.NotificationResponse, len(ns))
	for i, n := range ns {
		resp[i] = dto.NotificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *notificationService) MarkRead(ctx context.Context, username string, id uuid.UUID) error {
	// Scoped to username so users cannot mark each other's notifications.
	if err := s.repo.MarkRead(ctx, id, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("notification not found")
		}
		return apierror.Unavailable("notification store unavailable")
	}
	return nil
}
