// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	authGateway gateway.AuthGateway
	verifier    *auth.Verifier
	logger      *slog.Logger
	hooks       []usecase.IdentitySwitchHook
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	authGateway gateway.AuthGateway,
	verifier *auth.Verifier,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		authGateway: authGateway,
		verifier:    verifier,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login exchanges credentials for a token. Rejected credentials produce a
// non-Success output rather than an error, so the caller can render the
// message without special-casing.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Logging in", slog.String("email", input.Email))

	// 1. Exchange credentials with the auth service
	result, err := srv.authGateway.Login(ctx, gateway.Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if appErr, ok := domainerrors.AsAppError(err); ok && appErr.HTTPCode() < 500 {
			srv.log(ctx).Info("Login rejected", slog.String("email", input.Email))

			return &usecase.AuthOutput{
				Success: false,
				Message: rejectionMessage(appErr, "Invalid email or password"),
			}, nil
		}

		return nil, errors.Wrap(err, "failed to log in")
	}

	// 2. Fire the identity-switch hooks so the anonymous session retires
	srv.fireIdentitySwitch(ctx, input.SessionID)

	return &usecase.AuthOutput{
		Success: true,
		Token:   result.Token,
		User:    result.User,
	}, nil
}

// Register creates an account and logs the shopper in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Registering account", slog.String("email", input.Email))

	result, err := srv.authGateway.Register(ctx, gateway.Registration{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		if appErr, ok := domainerrors.AsAppError(err); ok && appErr.HTTPCode() < 500 {
			srv.log(ctx).Info("Registration rejected", slog.String("email", input.Email))

			return &usecase.AuthOutput{
				Success: false,
				Message: rejectionMessage(appErr, "Registration failed. Please try again."),
			}, nil
		}

		return nil, errors.Wrap(err, "failed to register")
	}

	srv.fireIdentitySwitch(ctx, input.SessionID)

	return &usecase.AuthOutput{
		Success: true,
		Token:   result.Token,
		User:    result.User,
	}, nil
}

// Logout notifies the auth service and drops the token from the verifier
// cache. An upstream failure is logged and swallowed: the shopper is logged
// out locally no matter what the auth service says.
func (srv *authService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}

	if err := srv.authGateway.Logout(ctx, token); err != nil {
		srv.log(ctx).Warn("Logout notification failed", slog.Any("error", err))
	}

	srv.verifier.Invalidate(token)
}

// CheckAuth resolves a token to its user. An empty or rejected token yields
// a nil user, not an error; only transport-level failures surface.
func (srv *authService) CheckAuth(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}

	user, err := srv.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, gateway.ErrTokenInvalid) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to verify token")
	}

	return user, nil
}

// Profile fetches the authenticated shopper's profile.
func (srv *authService) Profile(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing token")
	}

	user, err := srv.authGateway.Profile(ctx, token)
	if err != nil {
		if errors.Is(err, gateway.ErrTokenInvalid) {
			srv.verifier.Invalidate(token)

			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token rejected")
		}

		return nil, errors.Wrap(err, "failed to fetch profile")
	}

	return user, nil
}

// OnIdentitySwitch registers a hook fired on every anonymous→authenticated
// transition.
func (srv *authService) OnIdentitySwitch(hook usecase.IdentitySwitchHook) {
	srv.hooks = append(srv.hooks, hook)
}

func (srv *authService) fireIdentitySwitch(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	srv.log(ctx).Debug("Retiring anonymous session", slog.String("session_id", sessionID))

	for _, hook := range srv.hooks {
		hook(ctx, sessionID)
	}
}

// rejectionMessage prefers the upstream-supplied message, falling back to a
// fixed English string when the upstream gave none.
func rejectionMessage(appErr domainerrors.AppError, fallback string) string {
	if msg := appErr.Message(); msg != "" && appErr.ErrorCode() == "UPSTREAM_ERROR" {
		return msg
	}

	return fallback
}
