package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
	"pgmaint/internal/repositories"
)

// TenantInput is the writable part of a tenant record. Nil optional fields keep
// their current value on update and take defaults on create. An empty
// LastPaymentDate clears the date.
type TenantInput struct {
	Name            string
	RoomNumber      string
	Contact         string
	Deposit         *float64
	MonthlyRent     *float64
	RentStatus      *string
	LastPaymentDate *string
}

type TenantService interface {
	List(ctx context.Context) ([]*models.Tenant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Create(ctx context.Context, in TenantInput) (*models.Tenant, error)
	Update(ctx context.Context, id uuid.UUID, in TenantInput) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	repo   repositories.TenantRepository
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewTenantService(repo repositories.TenantRepository, clock clockwork.Clock, logger *zap.Logger) TenantService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tenantService{repo: repo, clock: clock, logger: logger.Named("tenants")}
}

func (s *tenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		return nil, common.NewInternalError("Error fetching tenants", err)
	}
	return tenants, nil
}

func (s *tenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, "Error fetching tenant")
	}
	return tenant, nil
}

func (s *tenantService) Create(ctx context.Context, in TenantInput) (*models.Tenant, error) {
	tenant := &models.Tenant{
		ID:         uuid.New(),
		RentStatus: models.RentStatusPending,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := applyTenantInput(tenant, in); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, common.NewInternalError("Error adding tenant", err)
	}

	s.logger.Info("tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("room_number", tenant.RoomNumber))
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, in TenantInput) (*models.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, "Error updating tenant")
	}
	if err := applyTenantInput(tenant, in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, wrapLookup(err, "Error updating tenant")
	}

	s.logger.Info("tenant updated", zap.String("tenant_id", tenant.ID.String()))
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapLookup(err, "Error deleting tenant")
	}
	s.logger.Info("tenant deleted", zap.String("tenant_id", id.String()))
	return nil
}

func applyTenantInput(t *models.Tenant, in TenantInput) error {
	name := strings.TrimSpace(in.Name)
	room := strings.TrimSpace(in.RoomNumber)
	contact := strings.TrimSpace(in.Contact)
	if name == "" || room == "" || contact == "" {
		return common.NewValidationError("name", "Name, room number, and contact are required")
	}
	if err := common.ValidateMaxLength(name, "name", common.MaxNameLength); err != nil {
		return err
	}
	if err := common.ValidateMaxLength(room, "room_number", common.MaxRoomNumberLength); err != nil {
		return err
	}
	if err := common.ValidateMaxLength(contact, "contact", common.MaxContactLength); err != nil {
		return err
	}

	if err := common.ValidateAmount(in.Deposit, "deposit"); err != nil {
		return err
	}
	if err := common.ValidateAmount(in.MonthlyRent, "monthly_rent"); err != nil {
		return err
	}
	paidOn, err := common.ParseDate(in.LastPaymentDate, "last_payment_date")
	if err != nil {
		return err
	}

	t.Name, t.RoomNumber, t.Contact = name, room, contact
	if in.Deposit != nil {
		t.Deposit = *in.Deposit
	}
	if in.MonthlyRent != nil {
		t.MonthlyRent = *in.MonthlyRent
	}
	if in.RentStatus != nil {
		status := models.RentStatus(strings.TrimSpace(*in.RentStatus))
		if !status.Valid() {
			return common.NewValidationError("rent_status", "Rent status must be Paid or Pending")
		}
		t.RentStatus = status
	}
	switch {
	case paidOn != nil:
		t.LastPaymentDate = paidOn
	case in.LastPaymentDate != nil:
		t.LastPaymentDate = nil
	}
	return nil
}

// wrapLookup passes NotFound through and hides anything else behind message.
func wrapLookup(err error, message string) error {
	if errors.Is(err, common.ErrNotFound) {
		return err
	}
	return common.NewInternalError(message, err)
}
