package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionValidate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	owner := NewOwnerSession("tok", OwnerPrincipal{ID: uuid.New(), Username: "admin"}, now, time.Hour)
	tenant := NewTenantSession("tok", TenantPrincipal{ID: uuid.New(), Name: "Ravi"}, now, time.Hour)

	assert.NoError(t, owner.Validate())
	assert.NoError(t, tenant.Validate())

	both := owner.Clone()
	both.Tenant = tenant.Tenant
	assert.ErrorIs(t, both.Validate(), ErrMalformedSession)

	mismatched := tenant.Clone()
	mismatched.Kind = PrincipalOwner
	assert.ErrorIs(t, mismatched.Validate(), ErrMalformedSession)

	unknown := &Session{Kind: "admin"}
	assert.ErrorIs(t, unknown.Validate(), ErrMalformedSession)
}

func TestSessionExpiryBoundary(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour
	s := NewOwnerSession("tok", OwnerPrincipal{ID: uuid.New()}, created, ttl)

	assert.False(t, s.ExpiredAt(created))
	assert.False(t, s.ExpiredAt(created.Add(ttl-time.Nanosecond)))
	assert.True(t, s.ExpiredAt(created.Add(ttl)))
	assert.True(t, s.ExpiredAt(created.Add(ttl+time.Second)))
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := NewTenantSession("tok", TenantPrincipal{ID: uuid.New(), Name: "Asha"}, time.Now(), time.Hour)
	c := s.Clone()
	c.Tenant.Name = "changed"
	assert.Equal(t, "Asha", s.Tenant.Name)
}

func TestComplaintStatusTransitions(t *testing.T) {
	assert.True(t, ComplaintStatusPending.CanTransitionTo(ComplaintStatusFixed))
	assert.True(t, ComplaintStatusFixed.CanTransitionTo(ComplaintStatusFixed))
	assert.True(t, ComplaintStatusPending.CanTransitionTo(ComplaintStatusPending))
	assert.False(t, ComplaintStatusFixed.CanTransitionTo(ComplaintStatusPending))

	assert.False(t, ComplaintStatus("Closed").Valid())
	assert.False(t, RentStatus("Overdue").Valid())
	assert.True(t, RentStatusPaid.Valid())
}
