package worker

import (
	"context"
	"testing"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubContractRepo struct {
	contracts []model.Contract
	updated   []model.Contract
}

func (s *stubContractRepo) Create(_ context.Context, c *model.Contract) error {
	s.contracts = append(s.contracts, *c)
	return nil
}

func (s *stubContractRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Contract, error) {
	for i := range s.contracts {
		if s.contracts[i].ID == id {
			return &s.contracts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubContractRepo) FindActiveByEmployee(_ context.Context, _ string) (*model.Contract, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubContractRepo) List(_ context.Context) ([]model.Contract, error) {
	return s.contracts, nil
}

func (s *stubContractRepo) Update(_ context.Context, c *model.Contract) error {
	for i := range s.contracts {
		if s.contracts[i].ID == c.ID {
			s.contracts[i] = *c
		}
	}
	s.updated = append(s.updated, *c)
	return nil
}

func (s *stubContractRepo) ListExpiringWithin(_ context.Context, d int) ([]model.Contract, error) {
	limit := time.Now().AddDate(0, 0, d)
	var out []model.Contract
	for _, c := range s.contracts {
		if c.Status == model.ContractActive && !c.EndDate.After(limit) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubContractRepo) Stats(_ context.Context) (*repository.ContractStats, error) {
	return &repository.ContractStats{}, nil
}

// deadRedis returns a client whose every command errors, so the daily
// notification guard fails and the cron skips enqueueing.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func contractFixture(employeeID string, endInDays int) model.Contract {
	return model.Contract{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Name:       "김철수",
		Store:      "본점",
		Position:   "staff",
		HourlyWage: decimal.NewFromInt(10030),
		StartDate:  time.Now().AddDate(-1, 0, 0),
		EndDate:    time.Now().AddDate(0, 0, endInDays),
		Status:     model.ContractActive,
	}
}

func TestContractCronMarksPastDueExpired(t *testing.T) {
	repo := &stubContractRepo{contracts: []model.Contract{
		contractFixture("kim", -3),
	}}
	rdb := deadRedis()
	cfg := ContractCronConfig{
		ContractRepo: repo,
		Dispatcher:   NewDispatcher(rdb),
		RDB:          rdb,
	}

	processExpiry(context.Background(), cfg)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, model.ContractExpired, repo.updated[0].Status)
	assert.Equal(t, model.ContractExpired, repo.contracts[0].Status)
}

func TestContractCronLeavesUpcomingContractActive(t *testing.T) {
	repo := &stubContractRepo{contracts: []model.Contract{
		contractFixture("kim", 10),
	}}
	rdb := deadRedis()
	cfg := ContractCronConfig{
		ContractRepo: repo,
		Dispatcher:   NewDispatcher(rdb),
		RDB:          rdb,
	}

	processExpiry(context.Background(), cfg)

	// Still inside the notice window: notified but not expired
	assert.Empty(t, repo.updated)
	assert.Equal(t, model.ContractActive, repo.contracts[0].Status)
}

func TestContractCronSkipsContractsOutsideWindow(t *testing.T) {
	repo := &stubContractRepo{contracts: []model.Contract{
		contractFixture("kim", 60),
	}}

	got, err := repo.ListExpiringWithin(context.Background(), expiryWindowDays)
	require.NoError(t, err)
	assert.Empty(t, got)
}
