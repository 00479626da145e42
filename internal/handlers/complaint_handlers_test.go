package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
	"pgmaint/internal/services"
)

func complaintEcho(svc *MockComplaintService, strict bool, sess *models.Session) *echo.Echo {
	h := NewComplaintHandlers(svc, strict)
	e := newTestEcho()
	g := e.Group("/api/complaints", withSession(sess))
	g.GET("", h.ListComplaints)
	g.GET("/tenant/:tenantId", h.ListTenantComplaints)
	g.POST("", h.CreateComplaint)
	g.PUT("/:id/status", h.UpdateComplaintStatus)
	return e
}

func tenantSession(id uuid.UUID) *models.Session {
	return models.NewTenantSession("t", models.TenantPrincipal{ID: id, Name: "Ravi", RoomNumber: "204"}, time.Now(), time.Hour)
}

func ownerSession() *models.Session {
	return models.NewOwnerSession("o", models.OwnerPrincipal{ID: uuid.New(), Username: "admin"}, time.Now(), time.Hour)
}

func TestComplaints_ListWithTenantName(t *testing.T) {
	svc := &MockComplaintService{}
	name := "Ravi"
	svc.On("List", mock.Anything).Return([]*models.Complaint{
		{ID: uuid.New(), Status: models.ComplaintStatusPending, TenantName: &name},
	}, nil)

	rec := doJSON(complaintEcho(svc, false, ownerSession()), http.MethodGet, "/api/complaints", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tenant_name":"Ravi"`)
	svc.AssertExpectations(t)
}

func TestComplaints_TenantRoutesOpenByDefault(t *testing.T) {
	svc := &MockComplaintService{}
	tenantID := uuid.New()
	svc.On("ListByTenant", mock.Anything, tenantID).Return([]*models.Complaint{}, nil)
	svc.On("Create", mock.Anything, services.ComplaintInput{
		TenantID:         tenantID.String(),
		RoomNumber:       "204",
		IssueDescription: "Leaking tap",
	}).Return(&models.Complaint{ID: uuid.New(), TenantID: tenantID}, nil)

	e := complaintEcho(svc, false, nil)

	rec := doJSON(e, http.MethodGet, "/api/complaints/tenant/"+tenantID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/complaints",
		`{"tenant_id":"`+tenantID.String()+`","room_number":"204","issue_description":"Leaking tap"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Complaint registered successfully", decode(t, rec)["message"])
	svc.AssertExpectations(t)
}

func TestComplaints_StrictMode(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("anonymous rejected", func(t *testing.T) {
		svc := &MockComplaintService{}
		e := complaintEcho(svc, true, nil)

		rec := doJSON(e, http.MethodGet, "/api/complaints/tenant/"+self.String(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = doJSON(e, http.MethodPost, "/api/complaints",
			`{"tenant_id":"`+self.String()+`","room_number":"204","issue_description":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("tenant limited to itself", func(t *testing.T) {
		svc := &MockComplaintService{}
		svc.On("ListByTenant", mock.Anything, self).Return([]*models.Complaint{}, nil)
		e := complaintEcho(svc, true, tenantSession(self))

		assert.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/api/complaints/tenant/"+self.String(), "").Code)

		rec := doJSON(e, http.MethodGet, "/api/complaints/tenant/"+other.String(), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(e, http.MethodPost, "/api/complaints",
			`{"tenant_id":"`+other.String()+`","room_number":"204","issue_description":"x"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("tenant id inferred from session", func(t *testing.T) {
		svc := &MockComplaintService{}
		svc.On("Create", mock.Anything, services.ComplaintInput{
			TenantID:         self.String(),
			RoomNumber:       "204",
			IssueDescription: "No hot water",
		}).Return(&models.Complaint{ID: uuid.New(), TenantID: self}, nil)
		e := complaintEcho(svc, true, tenantSession(self))

		rec := doJSON(e, http.MethodPost, "/api/complaints", `{"room_number":"204","issue_description":"No hot water"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("owner may act for anyone", func(t *testing.T) {
		svc := &MockComplaintService{}
		svc.On("ListByTenant", mock.Anything, other).Return([]*models.Complaint{}, nil)
		e := complaintEcho(svc, true, ownerSession())

		assert.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/api/complaints/tenant/"+other.String(), "").Code)
		svc.AssertExpectations(t)
	})
}

func TestComplaints_UpdateStatus(t *testing.T) {
	id := uuid.New()
	svc := &MockComplaintService{}
	svc.On("UpdateStatus", mock.Anything, id, "Fixed").
		Return(&models.Complaint{ID: id, Status: models.ComplaintStatusFixed}, nil)
	svc.On("UpdateStatus", mock.Anything, id, "Pending").Return(nil, common.ErrTransitionNotSupported)
	svc.On("UpdateStatus", mock.Anything, id, "Closed").
		Return(nil, common.NewValidationError("status", "Valid status (Pending/Fixed) is required"))

	e := complaintEcho(svc, false, ownerSession())
	path := "/api/complaints/" + id.String() + "/status"

	rec := doJSON(e, http.MethodPut, path, `{"status":"Fixed"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Fixed"`)

	rec = doJSON(e, http.MethodPut, path, `{"status":"Pending"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodPut, path, `{"status":"Closed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Valid status (Pending/Fixed) is required", decode(t, rec)["message"])

	svc.AssertExpectations(t)
}
