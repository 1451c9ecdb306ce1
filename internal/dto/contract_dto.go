package dto

import "github.com/shopspring/decimal"

type CreateContractRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required,min=1"`
	Name       string          `json:"name"        validate:"required,min=1,max=100"`
	Store      string          `json:"store"       validate:"required,min=1,max=100"`
	Position   string          `json:"position"    validate:"required,oneof=manager staff kitchen waiter"`
	HourlyWage decimal.Decimal `json:"hourly_wage" validate:"required,gt=0"`
	StartDate  string          `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate    string          `json:"end_date"    validate:"required,datetime=2006-01-02"`
}

type ContractResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Store      string          `json:"store"`
	Position   string          `json:"position"`
	HourlyWage decimal.Decimal `json:"hourly_wage"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Status     string          `json:"status"`
}

// ContractStatsResponse summarizes the contract book for the admin dashboard.
type ContractStatsResponse struct {
	Total         int64 `json:"total"`
	Active        int64 `json:"active"`
	ExpiringIn30d int64 `json:"expiring_in_30d"`
	Expired       int64 `json:"expired"`
}
