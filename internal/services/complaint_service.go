package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
	"pgmaint/internal/repositories"
)

type ComplaintInput struct {
	TenantID         string
	RoomNumber       string
	IssueDescription string
}

type ComplaintService interface {
	List(ctx context.Context) ([]*models.Complaint, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error)
	Create(ctx context.Context, in ComplaintInput) (*models.Complaint, error)
	// UpdateStatus moves a complaint to status. Fixed complaints cannot be reopened.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Complaint, error)
}

type complaintService struct {
	repo    repositories.ComplaintRepository
	tenants repositories.TenantRepository
	clock   clockwork.Clock
	logger  *zap.Logger
}

func NewComplaintService(repo repositories.ComplaintRepository, tenants repositories.TenantRepository, clock clockwork.Clock, logger *zap.Logger) ComplaintService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &complaintService{repo: repo, tenants: tenants, clock: clock, logger: logger.Named("complaints")}
}

func (s *complaintService) List(ctx context.Context) ([]*models.Complaint, error) {
	complaints, err := s.repo.List(ctx)
	if err != nil {
		return nil, common.NewInternalError("Error fetching complaints", err)
	}
	return complaints, nil
}

func (s *complaintService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error) {
	complaints, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, common.NewInternalError("Error fetching complaints", err)
	}
	return complaints, nil
}

func (s *complaintService) Create(ctx context.Context, in ComplaintInput) (*models.Complaint, error) {
	room := strings.TrimSpace(in.RoomNumber)
	issue := strings.TrimSpace(in.IssueDescription)
	if strings.TrimSpace(in.TenantID) == "" || room == "" || issue == "" {
		return nil, common.NewValidationError("tenant_id", "Tenant ID, room number, and issue description are required")
	}
	tenantID, err := common.ValidateUUID(in.TenantID, "tenant_id")
	if err != nil {
		return nil, err
	}
	if err := common.ValidateMaxLength(room, "room_number", common.MaxRoomNumberLength); err != nil {
		return nil, err
	}

	if _, err := s.tenants.GetByID(ctx, tenantID); err != nil {
		return nil, wrapLookup(err, "Error registering complaint")
	}

	complaint := &models.Complaint{
		ID:               uuid.New(),
		TenantID:         tenantID,
		RoomNumber:       room,
		IssueDescription: issue,
		Status:           models.ComplaintStatusPending,
		CreatedAt:        s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, common.NewInternalError("Error registering complaint", err)
	}

	s.logger.Info("complaint registered",
		zap.String("complaint_id", complaint.ID.String()),
		zap.String("tenant_id", tenantID.String()))
	return complaint, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Complaint, error) {
	next := models.ComplaintStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, common.NewValidationError("status", "Valid status (Pending/Fixed) is required")
	}

	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, "Error updating complaint status")
	}
	if !complaint.Status.CanTransitionTo(next) {
		return nil, common.ErrTransitionNotSupported
	}
	if complaint.Status == next {
		return complaint, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, wrapLookup(err, "Error updating complaint status")
	}
	complaint.Status = next

	s.logger.Info("complaint status updated",
		zap.String("complaint_id", id.String()),
		zap.String("status", string(next)))
	return complaint, nil
}
