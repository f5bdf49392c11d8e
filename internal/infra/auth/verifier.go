// Package auth verifies bearer tokens against the auth service and caches
// the result so hot paths do not pay a network round trip per request.
package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Verifier resolves bearer tokens to users. The auth service stays the
// source of truth; the cache only shortcuts repeat lookups and is always
// bounded by the token's own expiry.
type Verifier struct {
	authGateway gateway.AuthGateway
	cacheTTL    time.Duration
	logger      *slog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	user       *entity.User
	validUntil time.Time
}

// NewVerifier is the constructor for Verifier.
func NewVerifier(authGateway gateway.AuthGateway, cfg *config.Config, logger *slog.Logger) *Verifier {
	return &Verifier{
		authGateway: authGateway,
		cacheTTL:    cfg.Session.VerifyCacheTTL,
		logger:      logger,
		entries:     make(map[string]cacheEntry),
	}
}

// Verify resolves token to the user it belongs to. Concurrent calls with the
// same token share one upstream verification. Returns
// gateway.ErrTokenInvalid when the auth service rejects the token.
func (v *Verifier) Verify(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.WithStack(gateway.ErrTokenInvalid)
	}

	v.mu.RLock()
	entry, ok := v.entries[token]
	v.mu.RUnlock()
	if ok && time.Now().Before(entry.validUntil) {
		return entry.user, nil
	}

	result, err, _ := v.group.Do(token, func() (any, error) {
		user, err := v.authGateway.Verify(ctx, token)
		if err != nil {
			return nil, err
		}
		v.store(token, user)

		return user, nil
	})
	if err != nil {
		if errors.Is(err, gateway.ErrTokenInvalid) {
			v.Invalidate(token)

			return nil, errors.WithStack(gateway.ErrTokenInvalid)
		}

		return nil, errors.Wrap(err, "failed to verify token")
	}

	user, ok := result.(*entity.User)
	if !ok {
		return nil, errors.New("unexpected verification result type")
	}

	return user, nil
}

// Invalidate drops the cache entry for token. Called on logout and whenever
// an upstream call answers 401 for this token.
func (v *Verifier) Invalidate(token string) {
	v.mu.Lock()
	delete(v.entries, token)
	v.mu.Unlock()
}

func (v *Verifier) store(token string, user *entity.User) {
	validUntil := time.Now().Add(v.cacheTTL)

	// Never cache past the token's own expiry. The claim is read without
	// signature verification; the auth service already vouched for the token.
	if exp := tokenExpiry(token); !exp.IsZero() && exp.Before(validUntil) {
		validUntil = exp
	}
	if !time.Now().Before(validUntil) {
		return
	}

	v.mu.Lock()
	v.entries[token] = cacheEntry{user: user, validUntil: validUntil}
	v.mu.Unlock()
}

func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}
