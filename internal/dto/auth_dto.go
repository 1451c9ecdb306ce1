package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	// Role is optional; defaults to staff. Validated against the role enum
	// in the service so an unknown role is an invalid_input, not a 422.
	Role string `json:"role" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type ApproveRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	// Action is checked against the approve/reject pair in the service so
	// an unknown value is an invalid_input, not a 422.
	Action string `json:"action" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=4"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name"    validate:"omitempty,max=100"`
	Address string `json:"address" validate:"omitempty,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
	// ExpiresIn mirrors the cookie max-age in seconds
	ExpiresIn int `json:"expires_in"`
}
