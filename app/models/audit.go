package models

import "time"

// AuditEntry is one append-only audit record. Verification and rejection
// actions also append a human-readable line to the entity's notes for the
// screens, but this table is the queryable trail.
type AuditEntry struct {
	ID         string    `json:"id"`
	SchoolID   string    `json:"school_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
