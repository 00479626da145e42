package models

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the administrative principal. Owners are provisioned out-of-band.
type Owner struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// OwnerProfile is the public view of an owner returned on login
type OwnerProfile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

func (o *Owner) Profile() OwnerProfile {
	return OwnerProfile{
		ID:       o.ID,
		Username: o.Username,
		Name:     o.Name,
		Email:    o.Email,
	}
}

func (o *Owner) Principal() OwnerPrincipal {
	return OwnerPrincipal{
		ID:       o.ID,
		Username: o.Username,
		Name:     o.Name,
	}
}
