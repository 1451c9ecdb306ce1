package dto

type CreateEmployeeRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Phone    string `json:"phone"    validate:"omitempty,max=20"`
	Store    string `json:"store"    validate:"required,min=1,max=100"`
	Position string `json:"position" validate:"required,oneof=manager staff kitchen waiter"`
}

type UpdateEmployeeRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=1,max=100"`
	Phone    string `json:"phone"    validate:"omitempty,max=20"`
	Store    string `json:"store"    validate:"omitempty,min=1,max=100"`
	Position string `json:"position" validate:"omitempty,oneof=manager staff kitchen waiter"`
}

type EmployeeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Store    string `json:"store"`
	Position string `json:"position"`
	Active   bool   `json:"active"`
}
