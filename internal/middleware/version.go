package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionHeader stamps every response with the service name and build version.
func VersionHeader(service, version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Service", service)
			h.Set("X-API-Version", version)
			return next(c)
		}
	}
}
