package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"pgmaint/internal/common"
	"pgmaint/internal/metrics"
	"pgmaint/internal/models"
	"pgmaint/internal/repositories"
	"pgmaint/internal/sessions"
)

// AuthService turns owner credentials or a tenant contact number into a session.
type AuthService interface {
	// OwnerLogin verifies username/password. previousToken, if any, is discarded
	// before the new session is issued.
	OwnerLogin(ctx context.Context, username, password, previousToken string) (*OwnerLoginResult, error)
	// TenantLogin resolves a tenant by contact number alone.
	TenantLogin(ctx context.Context, contact, previousToken string) (*TenantLoginResult, error)
	// Logout destroys the session for token. Unknown tokens are not an error.
	Logout(ctx context.Context, token string) error
	// Check resolves token to a live session. It never fails: store errors are
	// logged and reported as unauthenticated.
	Check(ctx context.Context, token string) SessionCheck
}

type OwnerLoginResult struct {
	Session *models.Session
	Owner   models.OwnerProfile
}

type TenantLoginResult struct {
	Session *models.Session
	Tenant  models.TenantProfile
}

// SessionCheck is the boolean-shaped answer to "who is calling".
type SessionCheck struct {
	Authenticated bool
	Session       *models.Session
}

type AuthConfig struct {
	SessionTTL time.Duration
	Clock      clockwork.Clock
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

type authService struct {
	owners  repositories.OwnerRepository
	tenants repositories.TenantRepository
	store   sessions.Store
	hasher  PasswordHasher
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *zap.Logger
	metrics *metrics.Metrics

	dummyMu   sync.Mutex
	dummyHash string
}

func NewAuthService(owners repositories.OwnerRepository, tenants repositories.TenantRepository, store sessions.Store, hasher PasswordHasher, cfg AuthConfig) AuthService {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	s := &authService{
		owners:  owners,
		tenants: tenants,
		store:   store,
		hasher:  hasher,
		ttl:     cfg.SessionTTL,
		clock:   cfg.Clock,
		logger:  cfg.Logger.Named("auth"),
		metrics: cfg.Metrics,
	}
	s.unknownOwnerHash()
	return s
}

func (s *authService) OwnerLogin(ctx context.Context, username, password, previousToken string) (*OwnerLoginResult, error) {
	if username == "" || password == "" {
		return nil, common.NewValidationError("username", "Username and password are required")
	}

	owner, err := s.owners.GetByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		// Pay for a comparison anyway so an unknown username is not faster than a
		// wrong password.
		s.burnComparison(ctx, password)
		return nil, s.ownerFailure(username, "unknown username")
	}
	if err != nil {
		s.metrics.RecordAuthAttempt(string(models.PrincipalOwner), metrics.OutcomeError)
		return nil, common.NewInternalError("Server error during login", err)
	}

	ok, err := s.hasher.Compare(ctx, owner.PasswordHash, password)
	if err != nil {
		s.metrics.RecordAuthAttempt(string(models.PrincipalOwner), metrics.OutcomeError)
		return nil, common.NewInternalError("Server error during login", err)
	}
	if !ok {
		return nil, s.ownerFailure(username, "password mismatch")
	}

	sess, err := s.issue(ctx, previousToken, func(token string, now time.Time) *models.Session {
		return models.NewOwnerSession(token, owner.Principal(), now, s.ttl)
	})
	if err != nil {
		s.metrics.RecordAuthAttempt(string(models.PrincipalOwner), metrics.OutcomeError)
		return nil, err
	}

	s.metrics.RecordAuthAttempt(string(models.PrincipalOwner), metrics.OutcomeSuccess)
	s.logger.Info("owner logged in",
		zap.String("owner_id", owner.ID.String()),
		zap.String("username", owner.Username))

	return &OwnerLoginResult{Session: sess, Owner: owner.Profile()}, nil
}

func (s *authService) TenantLogin(ctx context.Context, contact, previousToken string) (*TenantLoginResult, error) {
	if contact == "" {
		return nil, common.NewValidationError("contact", "Contact number is required")
	}

	tenant, err := s.tenants.GetByContact(ctx, contact)
	if errors.Is(err, common.ErrNotFound) {
		s.metrics.RecordAuthAttempt(string(models.PrincipalTenant), metrics.OutcomeFailure)
		s.logger.Warn("tenant login failed", zap.String("contact", common.MaskIdentifier(contact)))
		return nil, common.ErrNoSuchTenant
	}
	if err != nil {
		s.metrics.RecordAuthAttempt(string(models.PrincipalTenant), metrics.OutcomeError)
		return nil, common.NewInternalError("Server error during login", err)
	}

	sess, err := s.issue(ctx, previousToken, func(token string, now time.Time) *models.Session {
		return models.NewTenantSession(token, tenant.Principal(), now, s.ttl)
	})
	if err != nil {
		s.metrics.RecordAuthAttempt(string(models.PrincipalTenant), metrics.OutcomeError)
		return nil, err
	}

	s.metrics.RecordAuthAttempt(string(models.PrincipalTenant), metrics.OutcomeSuccess)
	s.logger.Info("tenant logged in",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("room_number", tenant.RoomNumber))

	return &TenantLoginResult{Session: sess, Tenant: tenant.Profile()}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return common.NewInternalError("Error logging out", err)
	}
	s.logger.Info("session destroyed")
	return nil
}

func (s *authService) Check(ctx context.Context, token string) SessionCheck {
	if token == "" {
		return SessionCheck{}
	}
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, sessions.ErrSessionNotFound) {
			s.logger.Error("session lookup failed", zap.Error(err))
		}
		return SessionCheck{}
	}
	// Expiry is enforced here as well as in the store.
	if sess.ExpiredAt(s.clock.Now()) {
		return SessionCheck{}
	}
	return SessionCheck{Authenticated: true, Session: sess}
}

// issue discards previousToken and saves a fresh session built by build.
func (s *authService) issue(ctx context.Context, previousToken string, build func(token string, now time.Time) *models.Session) (*models.Session, error) {
	if previousToken != "" {
		if err := s.store.Delete(ctx, previousToken); err != nil {
			s.logger.Warn("failed to discard previous session", zap.Error(err))
		}
	}

	token, err := sessions.NewToken()
	if err != nil {
		return nil, common.NewInternalError("Server error during login", err)
	}
	sess := build(token, s.clock.Now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, common.NewInternalError("Server error during login", err)
	}
	return sess, nil
}

func (s *authService) ownerFailure(username, reason string) error {
	s.metrics.RecordAuthAttempt(string(models.PrincipalOwner), metrics.OutcomeFailure)
	s.logger.Warn("owner login failed",
		zap.String("username", common.MaskIdentifier(username)),
		zap.String("reason", reason))
	return common.ErrInvalidCredentials
}

func (s *authService) burnComparison(ctx context.Context, password string) {
	hash := s.unknownOwnerHash()
	if hash == "" {
		return
	}
	_, _ = s.hasher.Compare(ctx, hash, password)
}

// unknownOwnerHash returns the hash compared against for unknown usernames,
// building it if an earlier attempt failed.
func (s *authService) unknownOwnerHash() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash != "" {
		return s.dummyHash
	}
	hash, err := s.hasher.Hash(context.Background(), "pgmaint-unknown-owner")
	if err != nil {
		s.logger.Warn("could not prepare dummy hash", zap.Error(err))
		return ""
	}
	s.dummyHash = hash
	return hash
}
