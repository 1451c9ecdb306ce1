package service

import (
	"context"
	"errors"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuService interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	List(ctx context.Context, onlyAvailable bool) ([]dto.MenuItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	m := &model.MenuItem{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Available: true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("menu item already exists")
		}
		return nil, apierror.Unavailable("menu store unavailable")
	}
	return menuItemToResponse(m), nil
}

func (s *menuService) List(ctx context.Context, onlyAvailable bool) ([]dto.MenuItemResponse, error) {
	items, err := s.repo.List(ctx, onlyAvailable)
	if err != nil {
		return nil, apierror.Unavailable("menu store unavailable")
	}
	resp := make([]dto.MenuItemResponse, len(items))
	for i := range items {
		resp[i] = *menuItemToResponse(&items[i])
	}
	return resp, nil
}

func (s *menuService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("menu item not found")
		}
		return nil, apierror.Unavailable("menu store unavailable")
	}
	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Category != "" {
		m.Category = req.Category
	}
	if req.Price != nil {
		m.Price = *req.Price
	}
	if req.Available != nil {
		m.Available = *req.Available
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, apierror.Unavailable("menu store unavailable")
	}
	return menuItemToResponse(m), nil
}

func (s *menuService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("menu item not found")
		}
		return apierror.Unavailable("menu store unavailable")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Unavailable("menu store unavailable")
	}
	return nil
}

func menuItemToResponse(m *model.MenuItem) *dto.MenuItemResponse {
	return &dto.MenuItemResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Category:  m.Category,
		Price:     m.Price,
		Available: m.Available,
	}
}
