package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/rs/zerolog/log"
)

// NotifyJobPayload is the job envelope sent to QueueNotify.
type NotifyJobPayload struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

// NotifyWorker persists in-app notifications created by background jobs.
type NotifyWorker struct {
	repo repository.NotificationRepository
}

func NewNotifyWorker(repo repository.NotificationRepository) *NotifyWorker {
	return &NotifyWorker{repo: repo}
}

func (w *NotifyWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload NotifyJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("notify_worker: invalid payload: %w", err)
	}
	if payload.Username == "" || payload.Message == "" {
		// Nothing to deliver; dropping is better than dead-lettering
		log.Warn().Msg("notify_worker: empty username or message, skipping")
		return nil
	}
	if payload.Type == "" {
		payload.Type = model.NotifySystem
	}

	n := &model.Notification{
		Username: payload.Username,
		Type:     payload.Type,
		Message:  payload.Message,
	}
	if err := w.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("notify_worker: store notification for %s: %w", payload.Username, err)
	}
	log.Info().Str("username", payload.Username).Str("type", payload.Type).Msg("notify_worker: notification stored")
	return nil
}
