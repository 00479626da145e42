package server

import (
	"net/http"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"pgmaint/internal/handlers"
	"pgmaint/internal/metrics"
	"pgmaint/internal/middleware"
	"pgmaint/internal/services"
	"pgmaint/internal/sessions"
)

// ServiceName is stamped on every response and log line.
const ServiceName = "pgmaint"

// Dependencies is everything the HTTP layer needs. Services are built by the
// caller so tests can substitute any of them.
type Dependencies struct {
	Auth       services.AuthService
	Tenants    services.TenantService
	Complaints services.ComplaintService
	Cookies    *sessions.CookieManager

	DB    handlers.Pinger
	Store handlers.Pinger

	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Clock   clockwork.Clock

	Version          string
	APIPrefix        string
	CORSOrigins      []string
	StrictTenantAuth bool
}

// NewRouter builds the echo instance with middleware and every route
// registered under the API prefix.
func NewRouter(deps Dependencies) *echo.Echo {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := "/" + strings.Trim(deps.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics(deps.Metrics))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(middleware.VersionHeader(ServiceName, deps.Version))

	sessionMiddleware := middleware.NewSessionMiddleware(deps.Auth, deps.Cookies)
	e.Use(sessionMiddleware.Load())
	e.Use(middleware.Audit(logger))
	requireOwner := sessionMiddleware.RequireOwner()

	authHandlers := handlers.NewAuthHandlers(deps.Auth, deps.Cookies, logger)
	tenantHandlers := handlers.NewTenantHandlers(deps.Tenants)
	complaintHandlers := handlers.NewComplaintHandlers(deps.Complaints, deps.StrictTenantAuth)
	healthHandlers := handlers.NewHealthHandlers(deps.DB, deps.Store, deps.Version, prefix, deps.Clock)

	// Service info and metrics (no auth required)
	e.GET("/", healthHandlers.Root)
	e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))

	api := e.Group(prefix)
	api.GET("/health", healthHandlers.HealthCheck)
	api.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Authentication routes
	auth := api.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.POST("/logout", authHandlers.Logout)
	auth.GET("/check", authHandlers.Check)
	auth.POST("/tenant-login", authHandlers.TenantLogin)
	auth.GET("/tenant-check", authHandlers.TenantCheck)

	// Tenant routes (owner only)
	tenants := api.Group("/tenants", requireOwner)
	tenants.GET("", tenantHandlers.ListTenants)
	tenants.GET("/:id", tenantHandlers.GetTenant)
	tenants.POST("", tenantHandlers.CreateTenant)
	tenants.PUT("/:id", tenantHandlers.UpdateTenant)
	tenants.DELETE("/:id", tenantHandlers.DeleteTenant)

	// Complaint routes: the tenant-facing pair is gated by the handler in
	// strict mode and open otherwise.
	complaints := api.Group("/complaints")
	complaints.GET("", complaintHandlers.ListComplaints, requireOwner)
	complaints.PUT("/:id/status", complaintHandlers.UpdateComplaintStatus, requireOwner)
	if deps.StrictTenantAuth {
		requireSession := sessionMiddleware.RequireSession()
		complaints.GET("/tenant/:tenantId", complaintHandlers.ListTenantComplaints, requireSession)
		complaints.POST("", complaintHandlers.CreateComplaint, requireSession)
	} else {
		complaints.GET("/tenant/:tenantId", complaintHandlers.ListTenantComplaints)
		complaints.POST("", complaintHandlers.CreateComplaint)
	}

	return e
}
