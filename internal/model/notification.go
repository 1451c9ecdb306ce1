package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotifyContractExpiry = "contract_expiry"
	NotifyAccountPending = "account_pending"
	NotifySystem         = "system"
)

// Notification is an in-app message for one user, created by the worker
// pool. Email copies are sent separately and best-effort.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"index;not null"`
	Type      string    `gorm:"type:varchar(30);not null"`
	Message   string    `gorm:"not null"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
