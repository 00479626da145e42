package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request after the error handler has written
// the response, so the logged status is the one the client saw.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("route", c.Path()),
				zap.Int("status", res.Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				zap.String("remote_ip", c.RealIP()),
			}

			switch {
			case res.Status >= 500:
				logger.Error("HTTP request", fields...)
			case res.Status >= 400:
				logger.Warn("HTTP request", fields...)
			default:
				logger.Info("HTTP request", fields...)
			}
			return nil
		}
	}
}
