package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

const minPasswordLength = 8

// RefreshStore abstracts the single-use refresh-token state (Redis).
type RefreshStore interface {
	// Save records a refresh-token id for a user, expiring after ttl.
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	// Consume removes jti and returns the user it belonged to. A missing or
	// already-consumed jti returns ok=false.
	Consume(ctx context.Context, jti string) (userID string, ok bool, err error)
	// RevokeUser drops every outstanding refresh token of the user.
	RevokeUser(ctx context.Context, userID string) error
}

// UserService implements signup, login, token refresh and account mutations.
type UserService struct {
	repo       ports.UserRepository
	posts      ports.PostRepository
	tokens     RefreshStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
	log        zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	posts ports.PostRepository,
	tokens RefreshStore,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
	bcryptCost int,
	log zerolog.Logger,
) *UserService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:       repo,
		posts:      posts,
		tokens:     tokens,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Register creates a new active account. Only the bcrypt hash of the
// password is ever stored.
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	fieldErrs := domain.FieldErrors{}
	if username == "" {
		fieldErrs.Add("username", "This field may not be blank.")
	}
	if len(password) < minPasswordLength {
		fieldErrs.Add("password", fmt.Sprintf("Password must be at least %d characters.", minPasswordLength))
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewFieldError("username", "A user with that username already exists.")
		}
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// A deactivated account fails exactly like a wrong password, so callers
// cannot probe which part was rejected.
func (s *UserService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return pair, nil
}

// Refresh exchanges a valid, unused refresh token for a new pair. Refresh
// tokens are single use: the presented jti is consumed before reissuing.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil || claims["typ"] != "refresh" {
		return nil, domain.ErrInvalidCredentials
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, domain.ErrInvalidCredentials
	}

	userID, ok, err := s.tokens.Consume(ctx, jti)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword verifies the current password and the confirmation, then
// rehashes. Password values are never echoed back.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, newPasswordAgain string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.NewFieldError("old_password", "Old password is incorrect")
	}
	if newPassword != newPasswordAgain {
		return domain.NewFieldError(domain.NonFieldKey, "The new passwords do not match.")
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewFieldError("new_password", fmt.Sprintf("Password must be at least %d characters.", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// UpdateUsername renames the account and rewrites the denormalized author
// name on the user's posts. Uniqueness is enforced by the store only; a
// violation surfaces as a field error on "username".
func (s *UserService) UpdateUsername(ctx context.Context, userID, username string) error {
	if username == "" {
		return domain.NewFieldError("username", "This field may not be blank.")
	}

	if err := s.repo.UpdateUsername(ctx, userID, username); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return domain.NewFieldError("username", "A user with that username already exists.")
		}
		return err
	}

	if err := s.posts.UpdateAuthorName(ctx, userID, username); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to propagate username to posts")
	}

	return nil
}

// Deactivate flips is_active off and revokes outstanding refresh tokens.
// The record is retained.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	if err := s.repo.SetActive(ctx, userID, false); err != nil {
		return err
	}
	if err := s.tokens.RevokeUser(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke refresh tokens")
	}

	s.log.Info().Str("user_id", userID).Msg("account deactivated")
	return nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"typ":      "access",
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"typ": "refresh",
		"jti": jti,
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(ctx, jti, user.ID, s.refreshTTL); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) parseToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}
