package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/infra/identity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HeaderXSessionID carries the anonymous session id for non-browser callers
// that do not send cookies.
const HeaderXSessionID = "x-session-id"

// Anonymous identities outlive auth tokens on purpose: a guest cart should
// still be there weeks later.
const sessionCookieTTL = 30 * 24 * time.Hour

// IdentityMiddleware resolves every request to exactly one shopper identity:
// a verified user id when a valid token is present, an anonymous session id
// otherwise. It is also the only place auth and session cookies are written.
type IdentityMiddleware struct {
	authUsecase usecase.AuthUsecase
	cfg         *config.Config
	logger      *slog.Logger
}

// NewIdentityMiddleware is the constructor for IdentityMiddleware.
func NewIdentityMiddleware(authUsecase usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{authUsecase: authUsecase, cfg: cfg, logger: logger}
}

// Resolve is applied to every route. A bad or expired token silently
// downgrades the request to anonymous rather than failing it; only
// RequireAuth turns that into a 401.
func (m *IdentityMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.token(c)
		if token != "" {
			user, err := m.authUsecase.CheckAuth(c.Request().Context(), token)
			switch {
			case err != nil:
				// An auth-service outage must not take down anonymous
				// browsing. Keep the cookie: the token may still be good.
				deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Warn(
					"Token verification unavailable, resolving as guest",
					slog.Any("error", err))
			case user != nil:
				deliverycontext.SetIdentity(c, entity.Identity{UserID: user.ID})
				deliverycontext.SetUser(c, user)
				deliverycontext.SetToken(c, token)

				return next(c)
			default:
				// Token rejected: drop the stale cookie and fall back to guest.
				m.expireCookie(c, m.cfg.Session.TokenCookie)
			}
		}

		sessionID := m.sessionID(c)
		if !identity.Looks(sessionID) {
			sessionID = identity.Mint()
			m.setCookie(c, m.cfg.Session.SessionCookie, sessionID, sessionCookieTTL)
		}

		deliverycontext.SetIdentity(c, entity.Identity{SessionID: sessionID})

		return next(c)
	}
}

// RequireAuth rejects anonymous requests. Must run after Resolve.
func (m *IdentityMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetUser(c) == nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
		}

		return next(c)
	}
}

// RequireRole rejects users lacking the role. Must run after RequireAuth.
func (m *IdentityMiddleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := deliverycontext.GetUser(c)
			if user == nil || user.Role != role {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+role+"' role")
			}

			return next(c)
		}
	}
}

// EstablishAuthenticated installs the token cookie and retires the session
// cookie. Every login and registration goes through here; no other code
// writes these cookies.
func (m *IdentityMiddleware) EstablishAuthenticated(c echo.Context, token string) {
	m.setCookie(c, m.cfg.Session.TokenCookie, token, m.cfg.Session.TokenTTL)
	m.expireCookie(c, m.cfg.Session.SessionCookie)
}

// ClearAuthenticated removes the token cookie and mints a fresh anonymous
// session so the shopper keeps a working identity after logout.
func (m *IdentityMiddleware) ClearAuthenticated(c echo.Context) string {
	m.expireCookie(c, m.cfg.Session.TokenCookie)

	sessionID := identity.Mint()
	m.setCookie(c, m.cfg.Session.SessionCookie, sessionID, sessionCookieTTL)

	return sessionID
}

// token extracts the bearer token from the auth cookie or, for non-browser
// clients, the Authorization header.
func (m *IdentityMiddleware) token(c echo.Context) string {
	if cookie, err := c.Cookie(m.cfg.Session.TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}

// sessionID extracts the anonymous session id from the session cookie or
// the x-session-id header.
func (m *IdentityMiddleware) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(m.cfg.Session.SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return c.Request().Header.Get(HeaderXSessionID)
}

func (m *IdentityMiddleware) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Session.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *IdentityMiddleware) expireCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Session.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
