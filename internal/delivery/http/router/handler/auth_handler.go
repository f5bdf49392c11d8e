// Package handler contains the HTTP handlers for the storefront.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for identity-related handlers.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	identity *middleware.IdentityMiddleware
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, identity *middleware.IdentityMiddleware, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		identity: identity,
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type authStateResponse struct {
	Authenticated bool `json:"authenticated"`
	User          any  `json:"user,omitempty"`
}

// Login handles the login request. On success the token cookie is installed
// and the anonymous session cookie retired.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		SessionID: identity.SessionID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if !output.Success {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", output.Message)
	}

	h.identity.EstablishAuthenticated(c, output.Token)

	return response.Success(c, http.StatusOK, output.User, "Login successful")
}

// Register handles account creation. A successful registration logs the
// shopper in immediately, with the same cookie transition as login.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, _ := deliverycontext.GetIdentity(c)

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		SessionID: identity.SessionID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if !output.Success {
		return response.BadRequest(c, "REGISTRATION_FAILED", output.Message)
	}

	h.identity.EstablishAuthenticated(c, output.Token)

	return response.Success(c, http.StatusCreated, output.User, "Registration successful")
}

// Logout drops the token cookie and issues a fresh anonymous session. It
// never fails: the upstream notification is best-effort.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := deliverycontext.GetToken(c)
	h.uc.Logout(c.Request().Context(), token)

	sessionID := h.identity.ClearAuthenticated(c)

	return response.Success(c, http.StatusOK, map[string]string{"sessionId": sessionID}, "Logout successful")
}

// Session reports the current auth state without side effects.
func (h *AuthHandler) Session(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	state := authStateResponse{Authenticated: user != nil}
	if user != nil {
		state.User = user
	}

	return response.Success(c, http.StatusOK, state, "")
}

// Profile returns the authenticated shopper's profile.
func (h *AuthHandler) Profile(c echo.Context) error {
	token := deliverycontext.GetToken(c)

	user, err := h.uc.Profile(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
