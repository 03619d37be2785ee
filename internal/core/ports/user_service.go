package ports

import (
	"context"

	"github.com/scribehub/scribehub-api/internal/core/domain"
)

// TokenPair carries the bearer credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService defines account operations. Validation failures are returned
// as domain.FieldErrors so the transport can render a field-keyed 400 body.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword, newPasswordAgain string) error
	UpdateUsername(ctx context.Context, userID, username string) error
	Deactivate(ctx context.Context, userID string) error
}
