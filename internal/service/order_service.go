package service

import (
	"context"
	"errors"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// Create resolves menu prices server-side and snapshots them onto the
	// order lines.
	Create(ctx context.Context, createdBy string, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	List(ctx context.Context, status string) ([]dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	// UpdateStatus enforces open → served → paid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type orderService struct {
	repo repository.OrderRepository
	menu repository.MenuRepository
}

func NewOrderService(repo repository.OrderRepository, menu repository.MenuRepository) OrderService {
	return &orderService{repo: repo, menu: menu}
}

func (s *orderService) Create(ctx context.Context, createdBy string, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	order := &model.Order{
		TableNo:   req.TableNo,
		Status:    model.OrderOpen,
		CreatedBy: createdBy,
		Total:     decimal.Zero,
	}

	for _, item := range req.Items {
		mid, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, apierror.InvalidInput("invalid menu_item_id")
		}
		m, err := s.menu.FindByID(ctx, mid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.InvalidInput("unknown menu item: " + item.MenuItemID)
			}
			return nil, apierror.Unavailable("menu store unavailable")
		}
		if !m.Available {
			return nil, apierror.InvalidInput("menu item not available: " + m.Name)
		}
		subtotal := m.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, model.OrderItem{
			MenuItemID: m.ID,
			Name:       m.Name,
			Quantity:   item.Quantity,
			UnitPrice:  m.Price,
			Subtotal:   subtotal,
		})
		order.Total = order.Total.Add(subtotal)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, apierror.Unavailable("order store unavailable")
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, status string) ([]dto.OrderResponse, error) {
	if status != "" && status != model.OrderOpen && status != model.OrderServed && status != model.OrderPaid {
		return nil, apierror.InvalidInput("unknown order status: " + status)
	}
	orders, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apierror.Unavailable("order store unavailable")
	}
	resp := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = *orderToResponse(&orders[i])
	}
	return resp, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("order not found")
		}
		return nil, apierror.Unavailable("order store unavailable")
	}
	return orderToResponse(order), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := s.repo.UpdateStatusLocked(ctx, id, func(o *model.Order) error {
		valid := (o.Status == model.OrderOpen && status == model.OrderServed) ||
			(o.Status == model.OrderServed && status == model.OrderPaid)
		if !valid {
			return apierror.InvalidState("cannot move order from " + o.Status + " to " + status)
		}
		o.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("order not found")
		}
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return apierror.Unavailable("order store unavailable")
	}
	return nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = dto.OrderItemResponse{
			MenuItemID: it.MenuItemID.String(),
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
		}
	}
	return &dto.OrderResponse{
		ID:        o.ID.String(),
		TableNo:   o.TableNo,
		Status:    o.Status,
		Total:     o.Total,
		CreatedBy: o.CreatedBy,
		Items:     items,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
