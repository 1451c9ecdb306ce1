package dto

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	TableNo int                      `json:"table_no" validate:"required,gt=0"`
	Items   []CreateOrderItemRequest `json:"items"    validate:"required,min=1,dive"`
}

type CreateOrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=served paid"`
}

type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	TableNo   int                 `json:"table_no"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	CreatedBy string              `json:"created_by"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt string              `json:"created_at"`
}
