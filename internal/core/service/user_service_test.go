package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/scribehub/scribehub-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(u)
	copy.ID = fmt.Sprintf("u%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateUsername(_ context.Context, id, username string) error {
	for uid, u := range r.users {
		if u.Username == username && uid != id {
			return domain.ErrUserExists
		}
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Username = username
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

type stubRefreshStore struct {
	jtis map[string]string
}

func newStubRefreshStore() *stubRefreshStore {
	return &stubRefreshStore{jtis: make(map[string]string)}
}

func (s *stubRefreshStore) Save(_ context.Context, jti, userID string, _ time.Duration) error {
	s.jtis[jti] = userID
	return nil
}

func (s *stubRefreshStore) Consume(_ context.Context, jti string) (string, bool, error) {
	userID, ok := s.jtis[jti]
	if !ok {
		return "", false, nil
	}
	delete(s.jtis, jti)
	return userID, true, nil
}

func (s *stubRefreshStore) RevokeUser(_ context.Context, userID string) error {
	for jti, uid := range s.jtis {
		if uid == userID {
			delete(s.jtis, jti)
		}
	}
	return nil
}

func newUserService(repo *stubUserRepo, posts *stubPostRepo, tokens *stubRefreshStore) *UserService {
	return NewUserService(repo, posts, tokens, "secret", time.Hour, 24*time.Hour, bcrypt.MinCost, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	user, err := svc.Register(context.Background(), "alice", "correcthorse")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !user.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if user.PasswordHash == "correcthorse" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correcthorse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	_, err := svc.Register(context.Background(), "", "short")
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if got := fieldErrs["username"]; len(got) != 1 || got[0] != "This field may not be blank." {
		t.Fatalf("unexpected username errors: %v", got)
	}
	if got := fieldErrs["password"]; len(got) != 1 || got[0] != "Password must be at least 8 characters." {
		t.Fatalf("unexpected password errors: %v", got)
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	if _, err := svc.Register(context.Background(), "bob", "hunter2hunter2"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "bob", "differentpass")
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if got := fieldErrs["username"]; len(got) != 1 || got[0] != "A user with that username already exists." {
		t.Fatalf("unexpected username errors: %v", got)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubPostRepo(), newStubRefreshStore())

	user, err := svc.Register(context.Background(), "carol", "s3cretpass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := svc.Login(context.Background(), "carol", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(pair.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims["typ"] != "access" || claims["sub"] != user.ID || claims["username"] != "carol" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	if _, err := svc.Register(context.Background(), "dave", "rightpass1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", "wrongpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserService_Login_DeactivatedAccount(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	user, err := svc.Register(context.Background(), "erin", "validpass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	// The correct password on a deactivated account must fail exactly like a
	// wrong password.
	if _, err := svc.Login(context.Background(), "erin", "validpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Refresh_SingleUse(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	if _, err := svc.Register(context.Background(), "frank", "validpass1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "frank", "validpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a rotated refresh token")
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected reuse to fail, got %v", err)
	}
}

func TestUserService_Refresh_RejectsAccessToken(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	if _, err := svc.Register(context.Background(), "grace", "validpass1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "grace", "validpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected access token to be rejected, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	user, err := svc.Register(context.Background(), "heidi", "oldpass12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err = svc.ChangePassword(context.Background(), user.ID, "wrongold", "newpass12", "newpass12")
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) || fieldErrs["old_password"][0] != "Old password is incorrect" {
		t.Fatalf("expected old_password error, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), user.ID, "oldpass12", "newpass12", "other1234")
	if !errors.As(err, &fieldErrs) || fieldErrs[domain.NonFieldKey][0] != "The new passwords do not match." {
		t.Fatalf("expected non_field_errors mismatch, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), user.ID, "oldpass12", "tiny", "tiny")
	if !errors.As(err, &fieldErrs) || fieldErrs["new_password"][0] != "Password must be at least 8 characters." {
		t.Fatalf("expected new_password error, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "oldpass12", "newpass12", "newpass12"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "heidi", "oldpass12"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "heidi", "newpass12"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUserService_UpdateUsername_PropagatesToPosts(t *testing.T) {
	posts := newStubPostRepo()
	svc := newUserService(newStubUserRepo(), posts, newStubRefreshStore())

	user, err := svc.Register(context.Background(), "ivan", "validpass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := posts.Create(context.Background(), &domain.Post{Title: "a", AuthorID: user.ID, AuthorName: "ivan"}); err != nil {
		t.Fatalf("seed post failed: %v", err)
	}

	if err := svc.UpdateUsername(context.Background(), user.ID, "ivan2"); err != nil {
		t.Fatalf("update username failed: %v", err)
	}

	stored, err := posts.List(context.Background())
	if err != nil {
		t.Fatalf("list posts failed: %v", err)
	}
	if len(stored) != 1 || stored[0].AuthorName != "ivan2" {
		t.Fatalf("expected denormalized author name to follow the rename, got %+v", stored[0])
	}
}

func TestUserService_UpdateUsername_Validation(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	alice, err := svc.Register(context.Background(), "alice", "validpass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "validpass1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var fieldErrs domain.FieldErrors
	err = svc.UpdateUsername(context.Background(), alice.ID, "")
	if !errors.As(err, &fieldErrs) || fieldErrs["username"][0] != "This field may not be blank." {
		t.Fatalf("expected blank username error, got %v", err)
	}

	err = svc.UpdateUsername(context.Background(), alice.ID, "bob")
	if !errors.As(err, &fieldErrs) || fieldErrs["username"][0] != "A user with that username already exists." {
		t.Fatalf("expected taken username error, got %v", err)
	}
}

func TestUserService_Deactivate_RevokesRefreshTokens(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubPostRepo(), newStubRefreshStore())

	user, err := svc.Register(context.Background(), "judy", "validpass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "judy", "validpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected outstanding refresh token to be revoked, got %v", err)
	}
}
