package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pgmaint/internal/common"
)

// APIResponse is the envelope of every success response.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failure response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{Success: true, Message: message, Data: data})
}

// NewHTTPErrorHandler renders taxonomy errors as {success:false, message}.
// 5xx details are logged at error level and clients get the generic message;
// client mistakes from the taxonomy are logged at debug.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := translateError(err)
		fields := []zap.Field{
			zap.Error(err),
			zap.Int("status", status),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case common.IsDomainError(err):
			logger.Debug("request rejected", fields...)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func translateError(err error) (int, ErrorResponse) {
	var (
		verr *common.ValidationError
		nerr *common.NotFoundError
		herr *echo.HTTPError
		ierr *common.InternalError
	)
	fail := func(status int, message string) (int, ErrorResponse) {
		return status, ErrorResponse{Success: false, Message: message}
	}

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Success: false, Message: verr.Message, Field: verr.Field}
	case errors.Is(err, common.ErrInvalidCredentials):
		return fail(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrNoSuchTenant):
		return fail(http.StatusUnauthorized, "No tenant found with this contact number")
	case errors.Is(err, common.ErrUnauthorized):
		return fail(http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, common.ErrForbidden):
		return fail(http.StatusForbidden, "Access to this tenant is not permitted")
	case errors.Is(err, common.ErrTransitionNotSupported):
		return fail(http.StatusConflict, "Reopening a fixed complaint is not supported")
	case errors.As(err, &nerr):
		return fail(http.StatusNotFound, nerr.Error())
	case errors.Is(err, common.ErrNotFound):
		return fail(http.StatusNotFound, "Not found")
	case errors.As(err, &herr):
		msg, ok := herr.Message.(string)
		if !ok {
			msg = fmt.Sprint(herr.Message)
		}
		if herr.Code >= http.StatusInternalServerError {
			msg = "Internal server error"
		}
		return fail(herr.Code, msg)
	case errors.As(err, &ierr):
		return fail(http.StatusInternalServerError, ierr.Message)
	default:
		return fail(http.StatusInternalServerError, "Internal server error")
	}
}
