package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"pgmaint/internal/metrics"
)

// Metrics records request counts and latency labelled by route template, not raw
// path, to keep label cardinality bounded.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.RecordHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
