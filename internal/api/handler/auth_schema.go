package handler

import "time"

// errorResponse is the standard error envelope returned on non-validation
// 4xx/5xx responses. Validation failures return the field→messages map
// instead (see the API error handler).
type errorResponse struct {
	Error string `json:"error"`
}

// detailResponse is the confirmation envelope used by account operations.
type detailResponse struct {
	Detail string `json:"detail"`
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// tokenResponse mirrors the obtain/refresh pair shape.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type changePasswordRequest struct {
	OldPassword      string `json:"old_password"`
	NewPassword      string `json:"new_password"`
	NewPasswordAgain string `json:"new_password_again"`
}

type userUpdateRequest struct {
	Username string `json:"username"`
}
