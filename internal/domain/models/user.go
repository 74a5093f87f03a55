package models

import "time"

// User is the local mirror of an identity-provider user. The ID is the
// provider's subject claim, not a generated UUID. OrgID is nil for users who
// have not joined an organization and for platform super admins.
type User struct {
	ID        string     `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Name      string     `json:"name" db:"name"`
	OrgID     *string    `json:"org_id,omitempty" db:"org_id"`
	OrgRole   string     `json:"org_role" db:"org_role"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
