package models

import "time"

// Invitation statuses. Expiry is checked against ExpiresAt at acceptance
// time; expired rows keep status "pending" until accepted or revoked.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusRevoked  = "revoked"
)

type Invitation struct {
	ID        string    `json:"id" db:"id"`
	OrgID     string    `json:"org_id" db:"org_id"`
	Email     string    `json:"email" db:"email"`
	OrgRole   string    `json:"org_role" db:"org_role"`
	Token     string    `json:"-" db:"token"` // never serialized in list responses
	Status    string    `json:"status" db:"status"`
	InvitedBy string    `json:"invited_by" db:"invited_by"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
