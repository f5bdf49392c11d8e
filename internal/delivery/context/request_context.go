// Package context carries request-scoped values (request id, logger,
// resolved shopper identity) across the delivery and application layers.
package context

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyIdentity is the key for storing the resolved shopper identity.
	KeyIdentity ContextKey = "identity"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetIdentity stores the resolved shopper identity in echo.Context.
func SetIdentity(c echo.Context, id entity.Identity) {
	c.Set(string(KeyIdentity), id)
}

// GetIdentity extracts the resolved shopper identity from echo.Context.
// The second return is false when no identity middleware ran.
func GetIdentity(c echo.Context) (entity.Identity, bool) {
	val := c.Get(string(KeyIdentity))
	if id, ok := val.(entity.Identity); ok {
		return id, true
	}

	return entity.Identity{}, false
}

// SetUser stores the authenticated user in echo.Context.
func SetUser(c echo.Context, user *entity.User) {
	c.Set("user", user)
}

// GetUser extracts the authenticated user from echo.Context, or nil for
// anonymous requests.
func GetUser(c echo.Context) *entity.User {
	if user, ok := c.Get("user").(*entity.User); ok {
		return user
	}

	return nil
}

// SetToken stores the raw bearer token in echo.Context.
func SetToken(c echo.Context, token string) {
	c.Set("token", token)
}

// GetToken extracts the raw bearer token from echo.Context, or "".
func GetToken(c echo.Context) string {
	if token, ok := c.Get("token").(string); ok {
		return token
	}

	return ""
}
