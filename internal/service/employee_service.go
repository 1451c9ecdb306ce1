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

type EmployeeService interface {
	Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	repo repository.EmployeeRepository
}

func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e := &model.Employee{
		Username: req.Username,
		Name:     req.Name,
		Phone:    req.Phone,
		Store:    req.Store,
		Position: req.Position,
		Active:   true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("employee already exists for username " + req.Username)
		}
		return nil, apierror.Unavailable("employee store unavailable")
	}
	return employeeToResponse(e), nil
}

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	emps, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Unavailable("employee store unavailable")
	}
	resp := make([]dto.EmployeeResponse, len(emps))
	for i := range emps {
		resp[i] = *employeeToResponse(&emps[i])
	}
	return resp, nil
}

func (s *employeeService) Get(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapEmployeeErr(err)
	}
	return employeeToResponse(e), nil
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapEmployeeErr(err)
	}
	if req.Name != "" {
		e.Name = req.Name
	}
	if req.Phone != "" {
		e.Phone = req.Phone
	}
	if req.Store != "" {
		e.Store = req.Store
	}
	if req.Position != "" {
		e.Position = req.Position
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, apierror.Unavailable("employee store unavailable")
	}
	return employeeToResponse(e), nil
}

func (s *employeeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapEmployeeErr(err)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.Unavailable("employee store unavailable")
	}
	return nil
}

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:       e.ID.String(),
		Username: e.Username,
		Name:     e.Name,
		Phone:    e.Phone,
		Store:    e.Store,
		Position: e.Position,
		Active:   e.Active,
	}
}

func mapEmployeeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("employee not found")
	}
	return apierror.Unavailable("employee store unavailable")
}
