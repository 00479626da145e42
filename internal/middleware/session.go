package middleware

import (
	"github.com/labstack/echo/v4"

	"pgmaint/internal/common"
	"pgmaint/internal/services"
	"pgmaint/internal/sessions"
)

// SessionMiddleware resolves the session cookie once per request and enforces
// who may reach a route.
type SessionMiddleware struct {
	auth    services.AuthService
	cookies *sessions.CookieManager
}

func NewSessionMiddleware(auth services.AuthService, cookies *sessions.CookieManager) *SessionMiddleware {
	return &SessionMiddleware{auth: auth, cookies: cookies}
}

// Load attaches the live session, if any, to the request context. It never
// rejects a request.
func (m *SessionMiddleware) Load() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := m.cookies.TokenFrom(c.Request())
			if !ok {
				return next(c)
			}

			req := c.Request()
			check := m.auth.Check(req.Context(), token)
			if check.Authenticated {
				c.SetRequest(req.WithContext(common.WithSession(req.Context(), check.Session)))
			}
			return next(c)
		}
	}
}

// RequireOwner is the authorization gate for privileged routes: only an owner
// session passes. Tenant sessions are rejected like anonymous requests.
func (m *SessionMiddleware) RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := common.GetOwnerFromContext(c.Request().Context()); !ok {
				return common.ErrUnauthorized
			}
			return next(c)
		}
	}
}

// RequireSession admits any live session, owner or tenant.
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := common.GetSessionFromContext(c.Request().Context()); !ok {
				return common.ErrUnauthorized
			}
			return next(c)
		}
	}
}
