package model

import (
	"time"

	"github.com/google/uuid"
)

// Account roles. New registrations default to RoleStaff; only an admin can
// elevate a role afterwards.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleKitchen = "kitchen"
	RoleWaiter  = "waiter"
)

// Account lifecycle states. pending → active | rejected; rejected is terminal.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

// ValidRole reports whether r is one of the recognized roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleKitchen, RoleWaiter:
		return true
	}
	return false
}

// User stores accounts with role-based access and an approval lifecycle.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'staff'"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// Profile info, empty until the user fills it in
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
