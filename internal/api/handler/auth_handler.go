package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scribehub/scribehub-api/internal/api/metrics"
	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

// AuthHandler handles account and credential endpoints.
type AuthHandler struct {
	service ports.UserService
}

func NewAuthHandler(service ports.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string][]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and issues an access/refresh token pair.
//
// @Summary      Obtain a token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	pair, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

// Refresh exchanges a refresh token for a new pair.
//
// @Summary      Refresh a token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.service.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

// ChangePassword rotates the requester's password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new passwords"
// @Success      200   {object}  detailResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body changePasswordRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ChangePassword(c.Request().Context(), req.ID,
		body.OldPassword, body.NewPassword, body.NewPasswordAgain); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detailResponse{Detail: "Password changed successfully"})
}

// Deactivate disables the requester's account. The record is retained but
// every later authentication attempt fails.
//
// @Summary      Deactivate the account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  detailResponse
// @Failure      401  {object}  errorResponse
// @Router       /deactivate [post]
func (h *AuthHandler) Deactivate(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	if err := h.service.Deactivate(c.Request().Context(), req.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detailResponse{Detail: "Account Deactivated"})
}

// UpdateUser renames the requester's account.
//
// @Summary      Update the username
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userUpdateRequest  true  "New username"
// @Success      200   {object}  detailResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /user-update [patch]
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body userUpdateRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateUsername(c.Request().Context(), req.ID, body.Username); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detailResponse{Detail: "User updated successfully"})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}
