package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *pgxpool.Pool and every sessions.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and service info endpoints
type HealthHandlers struct {
	db        Pinger
	store     Pinger
	version   string
	apiPrefix string
	clock     clockwork.Clock
	started   time.Time
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db, store Pinger, version, apiPrefix string, clock clockwork.Clock) *HealthHandlers {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthHandlers{
		db:        db,
		store:     store,
		version:   version,
		apiPrefix: apiPrefix,
		clock:     clock,
		started:   clock.Now(),
	}
}

// HealthStatus represents the liveness answer
type HealthStatus struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// ReadinessStatus represents the readiness answer
type ReadinessStatus struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Services map[string]string `json:"services"`
}

// ServiceInfo describes the API at its root
type ServiceInfo struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
	Endpoints  map[string]string `json:"endpoints"`
}

// HealthCheck is a liveness probe; it touches no dependency
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	now := h.clock.Now()
	return c.JSON(http.StatusOK, HealthStatus{
		Success:   true,
		Message:   "Server is running",
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(h.started).Truncate(time.Second).String(),
	})
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := ReadinessStatus{
		Success:  true,
		Message:  "All systems operational",
		Services: map[string]string{},
	}
	for name, dep := range map[string]Pinger{"database": h.db, "sessions": h.store} {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			status.Services[name] = "unhealthy"
			status.Success = false
			continue
		}
		status.Services[name] = "healthy"
	}

	if !status.Success {
		status.Message = "Critical services unavailable"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}

// Root lists the API entry points
func (h *HealthHandlers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, ServiceInfo{
		Success:    true,
		Message:    "PG Maintenance System API",
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
		Endpoints: map[string]string{
			"auth":       h.apiPrefix + "/auth",
			"tenants":    h.apiPrefix + "/tenants",
			"complaints": h.apiPrefix + "/complaints",
			"health":     h.apiPrefix + "/health",
			"metrics":    "/metrics",
		},
	})
}
