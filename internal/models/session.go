package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type PrincipalKind string

const (
	PrincipalOwner  PrincipalKind = "owner"
	PrincipalTenant PrincipalKind = "tenant"
)

// OwnerPrincipal is the owner identity carried by a session
type OwnerPrincipal struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}

// TenantPrincipal is the tenant identity carried by a session
type TenantPrincipal struct {
	ID         uuid.UUID `json:"tenant_id"`
	Name       string    `json:"name"`
	RoomNumber string    `json:"room_number"`
}

// Session binds an opaque token to exactly one principal. Kind selects which of
// Owner or Tenant is set; the other is always nil.
type Session struct {
	Token     string           `json:"-"`
	Kind      PrincipalKind    `json:"kind"`
	Owner     *OwnerPrincipal  `json:"owner,omitempty"`
	Tenant    *TenantPrincipal `json:"tenant,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

var ErrMalformedSession = errors.New("session must carry exactly one principal matching its kind")

func NewOwnerSession(token string, owner OwnerPrincipal, now time.Time, ttl time.Duration) *Session {
	return &Session{
		Token:     token,
		Kind:      PrincipalOwner,
		Owner:     &owner,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func NewTenantSession(token string, tenant TenantPrincipal, now time.Time, ttl time.Duration) *Session {
	return &Session{
		Token:     token,
		Kind:      PrincipalTenant,
		Tenant:    &tenant,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Validate enforces the one-principal invariant.
func (s *Session) Validate() error {
	switch s.Kind {
	case PrincipalOwner:
		if s.Owner == nil || s.Tenant != nil {
			return ErrMalformedSession
		}
	case PrincipalTenant:
		if s.Tenant == nil || s.Owner != nil {
			return ErrMalformedSession
		}
	default:
		return ErrMalformedSession
	}
	return nil
}

// ExpiredAt reports whether the session is dead at now. A session is live strictly
// before ExpiresAt.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) IsOwner() bool {
	return s != nil && s.Kind == PrincipalOwner && s.Owner != nil
}

func (s *Session) IsTenant() bool {
	return s != nil && s.Kind == PrincipalTenant && s.Tenant != nil
}

// Clone returns a deep copy so stores never hand out shared principal pointers.
func (s *Session) Clone() *Session {
	c := *s
	if s.Owner != nil {
		o := *s.Owner
		c.Owner = &o
	}
	if s.Tenant != nil {
		t := *s.Tenant
		c.Tenant = &t
	}
	return &c
}
