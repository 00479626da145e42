package common

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"pgmaint/internal/models"
)

type contextKey string

const (
	SessionKey contextKey = "session"
)

// Column limits of the schema. Input longer than these is rejected before it
// reaches the database.
const (
	MaxUsernameLength   = 50
	MaxNameLength       = 100
	MaxEmailLength      = 100
	MaxRoomNumberLength = 20
	MaxContactLength    = 20

	// MaxAmount is the largest value NUMERIC(10,2) holds.
	MaxAmount = 99999999.99
)

// WithSession attaches a resolved session to the context
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// GetSessionFromContext extracts the session placed by the session middleware
func GetSessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*models.Session)
	return s, ok && s != nil
}

// GetOwnerFromContext returns the owner principal when the request carries an owner session
func GetOwnerFromContext(ctx context.Context) (*models.OwnerPrincipal, bool) {
	s, ok := GetSessionFromContext(ctx)
	if !ok || !s.IsOwner() {
		return nil, false
	}
	return s.Owner, true
}

// GetTenantFromContext returns the tenant principal when the request carries a tenant session
func GetTenantFromContext(ctx context.Context) (*models.TenantPrincipal, bool) {
	s, ok := GetSessionFromContext(ctx)
	if !ok || !s.IsTenant() {
		return nil, false
	}
	return s.Tenant, true
}

// ValidateUUID parses an identifier, reporting failures against fieldName
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, NewValidationError(fieldName, fmt.Sprintf("%s has invalid format", fieldName))
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateMaxLength rejects values longer than max characters
func ValidateMaxLength(value, fieldName string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewValidationError(fieldName, fmt.Sprintf("%s must be at most %d characters", fieldName, max))
	}
	return nil
}

// ValidateAmount validates optional money amounts. Values are checked after
// rounding to cents, the precision they are stored with.
func ValidateAmount(value *float64, fieldName string) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || *value < 0 {
		return NewValidationError(fieldName, fmt.Sprintf("%s must be a non-negative number", fieldName))
	}
	if math.Round(*value*100)/100 > MaxAmount {
		return NewValidationError(fieldName, fmt.Sprintf("%s is too large", fieldName))
	}
	return nil
}

// ParseDate parses an optional YYYY-MM-DD date
func ParseDate(dateStr *string, fieldName string) (*time.Time, error) {
	if dateStr == nil || strings.TrimSpace(*dateStr) == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(*dateStr))
	if err != nil {
		return nil, NewValidationError(fieldName, fmt.Sprintf("%s must be in YYYY-MM-DD format", fieldName))
	}
	return &date, nil
}

// MaskIdentifier keeps only the length of a login identifier for logs
func MaskIdentifier(s string) string {
	return fmt.Sprintf("<%d chars>", len(s))
}
