package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Allowed transitions: open → served → paid.
const (
	OrderOpen   = "open"
	OrderServed = "served"
	OrderPaid   = "paid"
)

// Order is a table order. Line prices are snapshotted at creation time so
// later menu price changes do not rewrite history.
type Order struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TableNo   int             `gorm:"not null"`
	Status    string          `gorm:"type:varchar(10);not null;default:'open'"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedBy string          `gorm:"not null"` // username
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
