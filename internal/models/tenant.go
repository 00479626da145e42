package models

import (
	"time"

	"github.com/google/uuid"
)

type RentStatus string

const (
	RentStatusPaid    RentStatus = "Paid"
	RentStatusPending RentStatus = "Pending"
)

func (s RentStatus) Valid() bool {
	return s == RentStatusPaid || s == RentStatusPending
}

// Tenant is a resident. The contact number doubles as the login key.
type Tenant struct {
	ID              uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Name            string     `json:"name" db:"name"`
	RoomNumber      string     `json:"room_number" db:"room_number"`
	Contact         string     `json:"contact" db:"contact"`
	Deposit         float64    `json:"deposit" db:"deposit"`
	MonthlyRent     float64    `json:"monthly_rent" db:"monthly_rent"`
	RentStatus      RentStatus `json:"rent_status" db:"rent_status"`
	LastPaymentDate *time.Time `json:"last_payment_date" db:"last_payment_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// TenantProfile is what a tenant sees about itself after login
type TenantProfile struct {
	ID              uuid.UUID  `json:"tenant_id"`
	Name            string     `json:"name"`
	RoomNumber      string     `json:"room_number"`
	Contact         string     `json:"contact"`
	MonthlyRent     float64    `json:"monthly_rent"`
	RentStatus      RentStatus `json:"rent_status"`
	LastPaymentDate *time.Time `json:"last_payment_date"`
}

func (t *Tenant) Profile() TenantProfile {
	return TenantProfile{
		ID:              t.ID,
		Name:            t.Name,
		RoomNumber:      t.RoomNumber,
		Contact:         t.Contact,
		MonthlyRent:     t.MonthlyRent,
		RentStatus:      t.RentStatus,
		LastPaymentDate: t.LastPaymentDate,
	}
}

func (t *Tenant) Principal() TenantPrincipal {
	return TenantPrincipal{
		ID:         t.ID,
		Name:       t.Name,
		RoomNumber: t.RoomNumber,
	}
}
