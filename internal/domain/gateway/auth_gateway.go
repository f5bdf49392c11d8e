package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrTokenInvalid is returned when the auth service rejects a bearer token.
var ErrTokenInvalid = errors.New("token invalid")

// Credentials is the login payload.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the account creation payload.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is the token+identity pair the auth service returns on
// successful login or registration.
type AuthResult struct {
	Token string
	User  *entity.User
}

// AuthGateway defines the operations the auth service exposes. Token
// issuance, password handling and account storage all live behind it.
type AuthGateway interface {
	// Login exchanges credentials for a token and identity.
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)

	// Register creates an account and returns a token and identity.
	Register(ctx context.Context, reg Registration) (*AuthResult, error)

	// Logout notifies the auth service that the token is being discarded.
	Logout(ctx context.Context, token string) error

	// Verify checks a bearer token and returns the identity it belongs to.
	// Returns ErrTokenInvalid when the service answers 401.
	Verify(ctx context.Context, token string) (*entity.User, error)

	// Profile fetches the full profile of the token's owner.
	Profile(ctx context.Context, token string) (*entity.User, error)
}
