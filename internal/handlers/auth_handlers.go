package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
	"pgmaint/internal/services"
	"pgmaint/internal/sessions"
)

// AuthHandlers handles owner and tenant login/logout and session checks
type AuthHandlers struct {
	auth    services.AuthService
	cookies *sessions.CookieManager
	logger  *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(auth services.AuthService, cookies *sessions.CookieManager, logger *zap.Logger) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{auth: auth, cookies: cookies, logger: logger}
}

// LoginRequest represents the owner login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful owner login
type LoginResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    models.OwnerProfile `json:"user"`
}

// TenantLoginRequest represents the tenant login payload
type TenantLoginRequest struct {
	Contact string `json:"contact"`
}

// TenantLoginResponse is returned on successful tenant login
type TenantLoginResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Tenant  models.TenantProfile `json:"tenant"`
}

// CheckResponse answers the owner session check
type CheckResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message"`
	Authenticated bool                   `json:"authenticated"`
	User          *models.OwnerPrincipal `json:"user,omitempty"`
}

// TenantCheckResponse answers the tenant session check
type TenantCheckResponse struct {
	Success       bool                    `json:"success"`
	Message       string                  `json:"message"`
	Authenticated bool                    `json:"authenticated"`
	Tenant        *models.TenantPrincipal `json:"tenant,omitempty"`
}

// Login handles owner login with username and password
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	previous, _ := h.cookies.TokenFrom(c.Request())
	res, err := h.auth.OwnerLogin(c.Request().Context(), req.Username, req.Password, previous)
	if err != nil {
		return err
	}
	if err := h.setSessionCookie(c, res.Session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    res.Owner,
	})
}

// TenantLogin handles tenant login by contact number
func (h *AuthHandlers) TenantLogin(c echo.Context) error {
	var req TenantLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	previous, _ := h.cookies.TokenFrom(c.Request())
	res, err := h.auth.TenantLogin(c.Request().Context(), req.Contact, previous)
	if err != nil {
		return err
	}
	if err := h.setSessionCookie(c, res.Session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TenantLoginResponse{
		Success: true,
		Message: "Login successful",
		Tenant:  res.Tenant,
	})
}

// Logout destroys the caller's session. Calling it without a session succeeds.
func (h *AuthHandlers) Logout(c echo.Context) error {
	token, _ := h.cookies.TokenFrom(c.Request())
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	c.SetCookie(h.cookies.Clear())
	return respond(c, http.StatusOK, "Logout successful", nil)
}

// Check reports whether the caller holds an owner session
func (h *AuthHandlers) Check(c echo.Context) error {
	owner, ok := common.GetOwnerFromContext(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, CheckResponse{Success: true, Message: "Not authenticated"})
	}
	return c.JSON(http.StatusOK, CheckResponse{
		Success:       true,
		Message:       "Authenticated",
		Authenticated: true,
		User:          owner,
	})
}

// TenantCheck reports whether the caller holds a tenant session
func (h *AuthHandlers) TenantCheck(c echo.Context) error {
	tenant, ok := common.GetTenantFromContext(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, TenantCheckResponse{Success: true, Message: "Not authenticated"})
	}
	return c.JSON(http.StatusOK, TenantCheckResponse{
		Success:       true,
		Message:       "Authenticated",
		Authenticated: true,
		Tenant:        tenant,
	})
}

func (h *AuthHandlers) setSessionCookie(c echo.Context, sess *models.Session) error {
	cookie, err := h.cookies.Issue(sess)
	if err != nil {
		// The session exists but the client can never present it; drop it.
		if derr := h.auth.Logout(c.Request().Context(), sess.Token); derr != nil {
			h.logger.Warn("failed to drop unusable session", zap.Error(derr))
		}
		return common.NewInternalError("Server error during login", err)
	}
	c.SetCookie(cookie)
	return nil
}
