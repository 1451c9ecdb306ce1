package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract statuses.
const (
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

// Contract is an employment contract with an hourly wage used by payroll.
type Contract struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID string          `gorm:"index;not null"` // username
	Name       string          `gorm:"not null"`
	Store      string          `gorm:"not null"`
	Position   string          `gorm:"type:varchar(20);not null"`
	HourlyWage decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StartDate  time.Time       `gorm:"not null"`
	EndDate    time.Time       `gorm:"index;not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
