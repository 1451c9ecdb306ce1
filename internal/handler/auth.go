package handler

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/middleware"
	"github.com/dsaslb/restaurant-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc    service.AuthService
	secure bool // Secure cookie flag, true in production
}

func NewAuthHandler(svc service.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, secure: secure}
}

// Register godoc
// @Summary 회원가입 (승인 대기 상태로 생성)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "계정 정보"
// @Success 201 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.Error
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "registration received; awaiting approval",
		User:    *user,
	})
}

// Login godoc
// @Summary 로그인 (세션 쿠키 발급)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "로그인 정보"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	token, resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	middleware.SetSessionCookie(c, token, int(h.svc.SessionTTL().Seconds()), h.secure)
	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.secure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ApproveOrReject godoc
// @Summary 대기 계정 승인/거절 (관리자 전용)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ApproveRequest true "승인 요청"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /auth/approve-or-reject [post]
func (h *AuthHandler) ApproveOrReject(c *gin.Context) {
	var req dto.ApproveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ApproveOrReject(c.Request.Context(), req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.ChangePassword(c.Request.Context(), claims.Username, req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUser godoc
// @Summary 계정 삭제 (관리자 전용, 본인 계정 삭제 불가)
// @Tags auth
// @Produce json
// @Param username path string true "삭제할 계정"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} apierror.Error
// @Failure 404 {object} apierror.Error
// @Router /auth/users/{username} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	target := c.Param("username")
	if err := h.svc.DeleteUser(c.Request.Context(), claims.Username, target); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListUsers returns accounts, optionally filtered by ?status=pending.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetProfile returns the caller's own account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	user, err := h.svc.GetProfile(c.Request.Context(), claims.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's own name and address.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	user, err := h.svc.UpdateProfile(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
