package models

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	ComplaintStatusPending ComplaintStatus = "Pending"
	ComplaintStatusFixed   ComplaintStatus = "Fixed"
)

func (s ComplaintStatus) Valid() bool {
	return s == ComplaintStatusPending || s == ComplaintStatusFixed
}

// CanTransitionTo reports whether a complaint in status s may move to next.
// Only Pending -> Fixed is a real transition; setting the current status again is a no-op.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	if s == next {
		return true
	}
	return s == ComplaintStatusPending && next == ComplaintStatusFixed
}

type Complaint struct {
	ID               uuid.UUID       `json:"complaint_id" db:"complaint_id"`
	TenantID         uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	RoomNumber       string          `json:"room_number" db:"room_number"`
	IssueDescription string          `json:"issue_description" db:"issue_description"`
	Status           ComplaintStatus `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`

	// Populated only by the owner-wide listing
	TenantName *string `json:"tenant_name,omitempty" db:"tenant_name"`
}
