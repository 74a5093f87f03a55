package models

import "time"

// AuditEvent records a role or membership mutation. Events are written in the
// same transaction as the mutation they describe, so the log never disagrees
// with the data.
type AuditEvent struct {
	ID         int64          `json:"id" db:"id"`
	OrgID      string         `json:"org_id" db:"org_id"`
	ActorID    string         `json:"actor_id" db:"actor_id"`
	Action     string         `json:"action" db:"action"`
	TargetType string         `json:"target_type" db:"target_type"`
	TargetID   string         `json:"target_id" db:"target_id"`
	Detail     map[string]any `json:"detail" db:"detail"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
