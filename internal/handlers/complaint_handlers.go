package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pgmaint/internal/common"
	"pgmaint/internal/services"
)

// ComplaintHandlers handles complaint listing, filing and status changes.
//
// With strict set, the tenant-facing routes require a session and a tenant
// session may only act on its own tenant id. Without it they accept any
// client-supplied tenant id.
type ComplaintHandlers struct {
	complaintService services.ComplaintService
	strict           bool
}

func NewComplaintHandlers(complaintService services.ComplaintService, strict bool) *ComplaintHandlers {
	return &ComplaintHandlers{complaintService: complaintService, strict: strict}
}

// ComplaintRequest represents the file-a-complaint payload
type ComplaintRequest struct {
	TenantID         string `json:"tenant_id"`
	RoomNumber       string `json:"room_number"`
	IssueDescription string `json:"issue_description"`
}

// StatusRequest represents the complaint status payload
type StatusRequest struct {
	Status string `json:"status"`
}

// ListComplaints returns every complaint with its tenant name (owner only)
func (h *ComplaintHandlers) ListComplaints(c echo.Context) error {
	complaints, err := h.complaintService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Complaints fetched successfully", complaints)
}

// ListTenantComplaints returns one tenant's complaints, newest first
func (h *ComplaintHandlers) ListTenantComplaints(c echo.Context) error {
	tenantID, err := common.ValidateUUID(c.Param("tenantId"), "tenantId")
	if err != nil {
		return err
	}
	if err := h.authorizeTenant(c, tenantID); err != nil {
		return err
	}

	complaints, err := h.complaintService.ListByTenant(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Complaints fetched successfully", complaints)
}

// CreateComplaint files a complaint for a tenant
func (h *ComplaintHandlers) CreateComplaint(c echo.Context) error {
	var req ComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if h.strict {
		if tenant, ok := common.GetTenantFromContext(c.Request().Context()); ok && strings.TrimSpace(req.TenantID) == "" {
			req.TenantID = tenant.ID.String()
		}
		if id, err := uuid.Parse(strings.TrimSpace(req.TenantID)); err == nil {
			if err := h.authorizeTenant(c, id); err != nil {
				return err
			}
		} else if _, ok := common.GetSessionFromContext(c.Request().Context()); !ok {
			return common.ErrUnauthorized
		}
	}

	complaint, err := h.complaintService.Create(c.Request().Context(), services.ComplaintInput{
		TenantID:         req.TenantID,
		RoomNumber:       req.RoomNumber,
		IssueDescription: req.IssueDescription,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Complaint registered successfully", complaint)
}

// UpdateComplaintStatus sets a complaint's status (owner only)
func (h *ComplaintHandlers) UpdateComplaintStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	complaint, err := h.complaintService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Complaint status updated successfully", complaint)
}

// authorizeTenant is a no-op unless strict. Owners may act for any tenant;
// tenants only for themselves.
func (h *ComplaintHandlers) authorizeTenant(c echo.Context, tenantID uuid.UUID) error {
	if !h.strict {
		return nil
	}
	ctx := c.Request().Context()
	if _, ok := common.GetOwnerFromContext(ctx); ok {
		return nil
	}
	tenant, ok := common.GetTenantFromContext(ctx)
	if !ok {
		return common.ErrUnauthorized
	}
	if tenant.ID != tenantID {
		return common.ErrForbidden
	}
	return nil
}
