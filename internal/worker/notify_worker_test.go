package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationRepo struct {
	created []model.Notification
	failing bool
}

func (s *stubNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if s.failing {
		return errors.New("db down")
	}
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotificationRepo) ListByUser(_ context.Context, username string) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range s.created {
		if n.Username == username {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationRepo) MarkRead(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestNotifyWorkerStoresNotification(t *testing.T) {
	repo := &stubNotificationRepo{}
	w := NewNotifyWorker(repo)

	err := w.Process(context.Background(), payload(t, NotifyJobPayload{
		Username: "kim", Type: model.NotifyContractExpiry, Message: "계약 만료 예정",
	}))
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "kim", repo.created[0].Username)
	assert.Equal(t, model.NotifyContractExpiry, repo.created[0].Type)
}

func TestNotifyWorkerDefaultsType(t *testing.T) {
	repo := &stubNotificationRepo{}
	w := NewNotifyWorker(repo)

	require.NoError(t, w.Process(context.Background(), payload(t, NotifyJobPayload{
		Username: "kim", Message: "안내",
	})))
	require.Len(t, repo.created, 1)
	assert.Equal(t, model.NotifySystem, repo.created[0].Type)
}

func TestNotifyWorkerDropsEmptyPayload(t *testing.T) {
	repo := &stubNotificationRepo{}
	w := NewNotifyWorker(repo)

	// Missing username is dropped, not retried
	require.NoError(t, w.Process(context.Background(), payload(t, NotifyJobPayload{Message: "x"})))
	assert.Empty(t, repo.created)
}

func TestNotifyWorkerPropagatesStorageError(t *testing.T) {
	repo := &stubNotificationRepo{failing: true}
	w := NewNotifyWorker(repo)

	err := w.Process(context.Background(), payload(t, NotifyJobPayload{
		Username: "kim", Message: "안내",
	}))
	assert.Error(t, err)
}

func TestNotifyWorkerRejectsMalformedPayload(t *testing.T) {
	w := NewNotifyWorker(&stubNotificationRepo{})
	assert.Error(t, w.Process(context.Background(), json.RawMessage(`{not json`)))
}
