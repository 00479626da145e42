package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pgmaint/internal/common"
	"pgmaint/internal/services"
)

// TenantHandlers handles tenant CRUD. Every route sits behind the owner gate.
type TenantHandlers struct {
	tenantService services.TenantService
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// TenantRequest represents the create/update tenant payload
type TenantRequest struct {
	Name            string   `json:"name"`
	RoomNumber      string   `json:"room_number"`
	Contact         string   `json:"contact"`
	Deposit         *float64 `json:"deposit"`
	MonthlyRent     *float64 `json:"monthly_rent"`
	RentStatus      *string  `json:"rent_status"`
	LastPaymentDate *string  `json:"last_payment_date"`
}

func (r TenantRequest) input() services.TenantInput {
	return services.TenantInput{
		Name:            r.Name,
		RoomNumber:      r.RoomNumber,
		Contact:         r.Contact,
		Deposit:         r.Deposit,
		MonthlyRent:     r.MonthlyRent,
		RentStatus:      r.RentStatus,
		LastPaymentDate: r.LastPaymentDate,
	}
}

// ListTenants returns every tenant, newest first
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenantService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tenants fetched successfully", tenants)
}

// GetTenant returns a single tenant
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenant, err := h.tenantService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tenant fetched successfully", tenant)
}

// CreateTenant adds a tenant
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Tenant added successfully", tenant)
}

// UpdateTenant replaces a tenant's fields. Omitted optional fields are kept.
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tenant updated successfully", tenant)
}

// DeleteTenant removes a tenant and its complaints
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.tenantService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tenant deleted successfully", nil)
}
