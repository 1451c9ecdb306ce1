package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the HR profile of a staff member, linked to an account by
// username. Kept separate from User so HR data can exist before the
// employee's account is approved.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Phone     string
	Store     string `gorm:"not null"`
	Position  string `gorm:"type:varchar(20);not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
