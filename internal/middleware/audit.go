package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pgmaint/internal/common"
)

// Audit writes one structured record per state-changing request: who acted,
// on which route and resource, and how it ended. Request bodies are never
// recorded. It must run after the session has been loaded.
func Audit(logger *zap.Logger) echo.MiddlewareFunc {
	audit := logger.Named("audit")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isMutation(c.Request().Method) {
				return next(c)
			}

			if err := next(c); err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("action", c.Request().Method+" "+c.Path()),
				zap.Int("status", c.Response().Status),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			for _, name := range c.ParamNames() {
				fields = append(fields, zap.String("resource_"+name, c.Param(name)))
			}
			fields = append(fields, actorFields(c)...)

			if c.Response().Status >= http.StatusBadRequest {
				audit.Warn("Mutation rejected", fields...)
			} else {
				audit.Info("Mutation applied", fields...)
			}
			return nil
		}
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func actorFields(c echo.Context) []zap.Field {
	ctx := c.Request().Context()
	if owner, ok := common.GetOwnerFromContext(ctx); ok {
		return []zap.Field{
			zap.String("actor_kind", "owner"),
			zap.String("actor_id", owner.ID.String()),
			zap.String("actor", owner.Username),
		}
	}
	if tenant, ok := common.GetTenantFromContext(ctx); ok {
		return []zap.Field{
			zap.String("actor_kind", "tenant"),
			zap.String("actor_id", tenant.ID.String()),
		}
	}
	return []zap.Field{zap.String("actor_kind", "anonymous")}
}
