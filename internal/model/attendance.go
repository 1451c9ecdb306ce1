package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance action tags.
const (
	ActionCheckIn  = "check-in"
	ActionCheckOut = "check-out"
)

// AttendanceRecord is one check-in or check-out event. Records are
// append-only: there is no update or delete path, corrections are new
// records. Pairing a check-in with its check-out is a reporting concern
// (see payroll service), not enforced here.
type AttendanceRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   string    `gorm:"index;not null"`
	EmployeeName string    `gorm:"not null"`
	Store        string    `gorm:"not null"`
	Action       string    `gorm:"type:varchar(10);not null"`
	Latitude     float64   `gorm:"not null"`
	Longitude    float64   `gorm:"not null"`
	// Address is the reverse-geocoded location; empty when resolution failed
	Address    string
	RecordedAt time.Time `gorm:"index;not null"`
}
