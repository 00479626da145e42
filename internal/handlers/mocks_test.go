package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pgmaint/internal/models"
	"pgmaint/internal/services"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) OwnerLogin(ctx context.Context, username, password, previousToken string) (*services.OwnerLoginResult, error) {
	args := m.Called(ctx, username, password, previousToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OwnerLoginResult), args.Error(1)
}

func (m *MockAuthService) TenantLogin(ctx context.Context, contact, previousToken string) (*services.TenantLoginResult, error) {
	args := m.Called(ctx, contact, previousToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TenantLoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Check(ctx context.Context, token string) services.SessionCheck {
	return m.Called(ctx, token).Get(0).(services.SessionCheck)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Create(ctx context.Context, in services.TenantInput) (*models.Tenant, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Update(ctx context.Context, id uuid.UUID, in services.TenantInput) (*models.Tenant, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockComplaintService struct {
	mock.Mock
}

func (m *MockComplaintService) List(ctx context.Context) ([]*models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Complaint), args.Error(1)
}

func (m *MockComplaintService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Complaint), args.Error(1)
}

func (m *MockComplaintService) Create(ctx context.Context, in services.ComplaintInput) (*models.Complaint, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Complaint, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}
