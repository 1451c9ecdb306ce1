package service

import (
	"context"
	"errors"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/config"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/middleware"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	// Login verifies credentials and returns the signed session token.
	// Wrong password, unknown user, and non-active accounts all fail with
	// the same error.
	Login(ctx context.Context, req dto.LoginRequest) (string, *dto.LoginResponse, error)
	ApproveOrReject(ctx context.Context, req dto.ApproveRequest) error
	ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) error
	DeleteUser(ctx context.Context, actor, target string) error
	GetProfile(ctx context.Context, username string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, username string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, status string) ([]dto.UserResponse, error)
	SessionTTL() time.Duration
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) SessionTTL() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}
	if !model.ValidRole(role) {
		return nil, apierror.InvalidInput("unrecognized role: " + req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.StatusPending,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index on username decides the race between two
		// concurrent registrations: exactly one insert wins.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("username already exists")
		}
		return nil, apierror.Unavailable("account store unavailable")
	}
	return userToResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, apierror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, apierror.ErrInvalidCredentials
	}
	// Pending and rejected accounts get the same response as a bad
	// password: account status must not be observable through login.
	if user.Status != model.StatusActive {
		return "", nil, apierror.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, &dto.LoginResponse{
		Success:   true,
		Role:      user.Role,
		ExpiresIn: int(s.SessionTTL().Seconds()),
	}, nil
}

func (s *authService) ApproveOrReject(ctx context.Context, req dto.ApproveRequest) error {
	if req.Action != "approve" && req.Action != "reject" {
		return apierror.InvalidInput("action must be approve or reject")
	}
	err := s.repo.UpdateLocked(ctx, req.Username, func(u *model.User) error {
		// Only pending accounts may move; rejected is terminal and
		// re-approving an active account is a caller bug, not a no-op.
		if u.Status != model.StatusPending {
			return apierror.InvalidState("account is " + u.Status + ", not pending")
		}
		if req.Action == "approve" {
			u.Status = model.StatusActive
		} else {
			u.Status = model.StatusRejected
		}
		return nil
	})
	return mapAccountErr(err, "user not found")
}

func (s *authService) ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) error {
	err := s.repo.UpdateLocked(ctx, username, func(u *model.User) error {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
			return apierror.Unauthenticated("old password incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
		return nil
	})
	return mapAccountErr(err, "user not found")
}

func (s *authService) DeleteUser(ctx context.Context, actor, target string) error {
	if actor == target {
		return apierror.InvalidState("cannot delete your own account")
	}
	return mapAccountErr(s.repo.DeleteLocked(ctx, target), "user not found")
}

func (s *authService) GetProfile(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapAccountErr(err, "user not found")
	}
	return userToResponse(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, username string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var updated *model.User
	err := s.repo.UpdateLocked(ctx, username, func(u *model.User) error {
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.Address != "" {
			u.Address = req.Address
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, mapAccountErr(err, "user not found")
	}
	return userToResponse(updated), nil
}

func (s *authService) ListUsers(ctx context.Context, status string) ([]dto.UserResponse, error) {
	var users []model.User
	var err error
	if status != "" {
		users, err = s.repo.ListByStatus(ctx, status)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, apierror.Unavailable("account store unavailable")
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = *userToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &middleware.SessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.SessionTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Role:      u.Role,
		Status:    u.Status,
		Name:      u.Name,
		Address:   u.Address,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// mapAccountErr translates repository errors: record-not-found becomes a 404
// kind, domain errors pass through, anything else is an opaque storage
// failure.
func mapAccountErr(err error, notFoundDetail string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(notFoundDetail)
	}
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return apierror.Unavailable("account store unavailable")
}
