package service

import (
	"context"
	"errors"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/config"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/infra"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractService interface {
	Create(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error)
	List(ctx context.Context) ([]dto.ContractResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ContractResponse, error)
	// Terminate marks an active contract terminated; terminated and expired
	// contracts cannot be terminated again.
	Terminate(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.ContractStatsResponse, error)
	// GeneratePDF renders the contract and returns the file path.
	GeneratePDF(ctx context.Context, id uuid.UUID) (string, error)
}

type contractService struct {
	repo repository.ContractRepository
	cfg  *config.Config
}

func NewContractService(repo repository.ContractRepository, cfg *config.Config) ContractService {
	return &contractService{repo: repo, cfg: cfg}
}

func (s *contractService) Create(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apierror.InvalidInput("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apierror.InvalidInput("end_date must be YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, apierror.InvalidInput("end_date must be after start_date")
	}

	c := &model.Contract{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Store:      req.Store,
		Position:   req.Position,
		HourlyWage: req.HourlyWage,
		StartDate:  start,
		EndDate:    end,
		Status:     model.ContractActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.Unavailable("contract store unavailable")
	}
	return contractToResponse(c), nil
}

func (s *contractService) List(ctx context.Context) ([]dto.ContractResponse, error) {
	cs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Unavailable("contract store unavailable")
	}
	resp := make([]dto.ContractResponse, len(cs))
	for i := range cs {
		resp[i] = *contractToResponse(&cs[i])
	}
	return resp, nil
}

func (s *contractService) Get(ctx context.Context, id uuid.UUID) (*dto.ContractResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapContractErr(err)
	}
	return contractToResponse(c), nil
}

func (s *contractService) Terminate(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapContractErr(err)
	}
	if c.Status != model.ContractActive {
		return apierror.InvalidState("contract is " + c.Status)
	}
	c.Status = model.ContractTerminated
	if err := s.repo.Update(ctx, c); err != nil {
		return apierror.Unavailable("contract store unavailable")
	}
	return nil
}

func (s *contractService) Stats(ctx context.Context) (*dto.ContractStatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apierror.Unavailable("contract store unavailable")
	}
	return &dto.ContractStatsResponse{
		Total:         stats.Total,
		Active:        stats.Active,
		ExpiringIn30d: stats.ExpiringIn30d,
		Expired:       stats.Expired,
	}, nil
}

func (s *contractService) GeneratePDF(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", mapContractErr(err)
	}
	path, err := infra.GenerateContractPDF(c, s.cfg.StoreName, s.cfg.PDFStoragePath)
	if err != nil {
		return "", apierror.Unavailable("failed to generate contract PDF")
	}
	return path, nil
}

func contractToResponse(c *model.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:         c.ID.String(),
		EmployeeID: c.EmployeeID,
		Name:       c.Name,
		Store:      c.Store,
		Position:   c.Position,
		HourlyWage: c.HourlyWage,
		StartDate:  c.StartDate.Format("2006-01-02"),
		EndDate:    c.EndDate.Format("2006-01-02"),
		Status:     c.Status,
	}
}

func mapContractErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("contract not found")
	}
	return apierror.Unavailable("contract store unavailable")
}
