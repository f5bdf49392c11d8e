package storeapi

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"

	"github.com/pkg/errors"
)

// authClient implements gateway.AuthGateway against the auth service.
type authClient struct {
	*client
}

// NewAuthGateway is the constructor for the auth service client.
func NewAuthGateway(cfg *config.Config, logger *slog.Logger) gateway.AuthGateway {
	return &authClient{
		client: newClient("auth", cfg.Services.Auth, cfg.Upstream, logger),
	}
}

type wireUser struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (w *wireUser) toEntity() *entity.User {
	return &entity.User{
		ID:        w.ID,
		Email:     w.Email,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Role:      w.Role,
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// Login exchanges credentials for a token and identity.
func (c *authClient) Login(ctx context.Context, creds gateway.Credentials) (*gateway.AuthResult, error) {
	body := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}

	var result struct {
		Token string   `json:"token"`
		User  wireUser `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", nil, nil, body, &result); err != nil {
		return nil, c.mapError(err)
	}

	return &gateway.AuthResult{Token: result.Token, User: result.User.toEntity()}, nil
}

// Register creates an account and returns a token and identity.
func (c *authClient) Register(ctx context.Context, reg gateway.Registration) (*gateway.AuthResult, error) {
	body := map[string]string{
		"email":     reg.Email,
		"password":  reg.Password,
		"firstName": reg.FirstName,
		"lastName":  reg.LastName,
	}

	var result struct {
		Token string   `json:"token"`
		User  wireUser `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", nil, nil, body, &result); err != nil {
		return nil, c.mapError(err)
	}

	return &gateway.AuthResult{Token: result.Token, User: result.User.toEntity()}, nil
}

// Logout notifies the auth service the token is being discarded.
func (c *authClient) Logout(ctx context.Context, token string) error {
	if err := c.call(ctx, http.MethodPost, "/api/auth/logout", nil, bearer(token), struct{}{}, nil); err != nil {
		return c.mapError(err)
	}

	return nil
}

// Verify checks a bearer token. A 401, or a 2xx with valid=false, maps to
// gateway.ErrTokenInvalid.
func (c *authClient) Verify(ctx context.Context, token string) (*entity.User, error) {
	var result struct {
		Valid bool     `json:"valid"`
		User  wireUser `json:"user"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/auth/verify", nil, bearer(token), nil, &result); err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			return nil, errors.WithStack(gateway.ErrTokenInvalid)
		}

		return nil, c.mapError(err)
	}
	if !result.Valid {
		return nil, errors.WithStack(gateway.ErrTokenInvalid)
	}

	return result.User.toEntity(), nil
}

// Profile fetches the full profile of the token's owner.
func (c *authClient) Profile(ctx context.Context, token string) (*entity.User, error) {
	var result wireUser
	if err := c.call(ctx, http.MethodGet, "/api/auth/profile", nil, bearer(token), nil, &result); err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			return nil, errors.WithStack(gateway.ErrTokenInvalid)
		}

		return nil, c.mapError(err)
	}

	return result.toEntity(), nil
}
