package dto

import "github.com/shopspring/decimal"

type CreateMenuItemRequest struct {
	Name     string          `json:"name"     validate:"required,min=1,max=100"`
	Category string          `json:"category" validate:"required,min=1,max=50"`
	Price    decimal.Decimal `json:"price"    validate:"required,gt=0"`
}

type UpdateMenuItemRequest struct {
	Name      string           `json:"name"      validate:"omitempty,min=1,max=100"`
	Category  string           `json:"category"  validate:"omitempty,min=1,max=50"`
	Price     *decimal.Decimal `json:"price"     validate:"omitempty,gt=0"`
	Available *bool            `json:"available"`
}

type MenuItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}
