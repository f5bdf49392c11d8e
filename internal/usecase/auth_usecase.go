// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a shopper to log in.
type LoginInput struct {
	Email    string
	Password string
	// SessionID is the anonymous identity active before the login, passed so
	// the identity-switch hook can retire it.
	SessionID string
}

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	SessionID string
}

// --- Output DTOs ---

// AuthOutput is the structured result of a login or registration attempt.
// Failed credentials are a result, not an error: Success is false and
// Message carries the server-supplied or fallback text.
type AuthOutput struct {
	Success bool
	Message string
	Token   string
	User    *entity.User
}

// IdentitySwitchHook is invoked exactly once per anonymous→authenticated
// transition, with the session id being retired. All session-id cleanup
// hangs off this hook; no call site clears session state on its own.
type IdentitySwitchHook func(ctx context.Context, sessionID string)

// AuthUsecase defines the identity lifecycle operations.
type AuthUsecase interface {
	// Login exchanges credentials for a token. Bad credentials produce a
	// non-Success output, not an error.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Register creates an account and logs the shopper in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Logout notifies the auth service and invalidates local token state.
	// Upstream failure is swallowed; local cleanup always happens.
	Logout(ctx context.Context, token string)

	// CheckAuth resolves a token to its user, or nil for anonymous.
	CheckAuth(ctx context.Context, token string) (*entity.User, error)

	// Profile fetches the authenticated shopper's profile.
	Profile(ctx context.Context, token string) (*entity.User, error)

	// OnIdentitySwitch registers a hook fired on every login transition.
	OnIdentitySwitch(hook IdentitySwitchHook)
}
