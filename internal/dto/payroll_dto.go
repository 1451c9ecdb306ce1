package dto

import "github.com/shopspring/decimal"

// PayrollEntryResponse is one employee's computed pay for a month.
type PayrollEntryResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Name        string          `json:"name"`
	Store       string          `json:"store"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	HourlyWage  decimal.Decimal `json:"hourly_wage"`
	Wage        decimal.Decimal `json:"wage"`
	// Shifts is the number of paired check-in/check-out pairs counted
	Shifts int `json:"shifts"`
}

type PayrollSummaryResponse struct {
	Month   string                 `json:"month"` // YYYY-MM
	Entries []PayrollEntryResponse `json:"entries"`
	Total   decimal.Decimal        `json:"total"`
}
