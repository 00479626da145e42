package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"pgmaint/internal/common"
	"pgmaint/internal/models"
	"pgmaint/internal/repositories"
)

// Default owner created on an empty owners table.
const (
	DefaultOwnerUsername = "admin"
	DefaultOwnerPassword = "admin123"
	DefaultOwnerName     = "Administrator"
	DefaultOwnerEmail    = "admin@pgmaint.local"
)

type OwnerInput struct {
	Username string
	Password string
	Name     string
	Email    string
}

// OwnerService provisions owners out-of-band. There is no HTTP surface for it.
type OwnerService interface {
	Provision(ctx context.Context, in OwnerInput) (*models.Owner, error)
	// SeedDefault creates the default owner when no owner exists yet and reports
	// whether it did.
	SeedDefault(ctx context.Context) (bool, error)
}

type ownerService struct {
	repo   repositories.OwnerRepository
	hasher PasswordHasher
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewOwnerService(repo repositories.OwnerRepository, hasher PasswordHasher, clock clockwork.Clock, logger *zap.Logger) OwnerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ownerService{repo: repo, hasher: hasher, clock: clock, logger: logger.Named("owners")}
}

func (s *ownerService) Provision(ctx context.Context, in OwnerInput) (*models.Owner, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	if err := common.ValidateRequiredString(username, "username"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateMaxLength(username, "username", common.MaxUsernameLength); err != nil {
		return nil, err
	}
	if err := common.ValidateMaxLength(name, "name", common.MaxNameLength); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	if err := common.ValidateMaxLength(email, "email", common.MaxEmailLength); err != nil {
		return nil, err
	}
	if len(in.Password) < 6 {
		return nil, common.NewValidationError("password", "password must be at least 6 characters")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, common.NewValidationError("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, common.NewInternalError("Error creating owner", err)
	}

	owner := &models.Owner{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Email:        email,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, owner); err != nil {
		return nil, common.NewInternalError("Error creating owner", err)
	}

	s.logger.Info("owner provisioned",
		zap.String("owner_id", owner.ID.String()),
		zap.String("username", owner.Username))
	return owner, nil
}

func (s *ownerService) SeedDefault(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, common.NewInternalError("Error counting owners", err)
	}
	if n > 0 {
		return false, nil
	}

	if _, err := s.Provision(ctx, OwnerInput{
		Username: DefaultOwnerUsername,
		Password: DefaultOwnerPassword,
		Name:     DefaultOwnerName,
		Email:    DefaultOwnerEmail,
	}); err != nil {
		return false, err
	}
	s.logger.Warn("default owner seeded; change its password",
		zap.String("username", DefaultOwnerUsername))
	return true, nil
}
