package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a recorded security or lifecycle event
type AuditLog struct {
	ID         int64      `json:"id" db:"id"`
	UserID     NullUUID   `json:"user_id,omitempty" db:"user_id"`
	Action     string     `json:"action" db:"action"`
	EntityType NullString `json:"entity_type,omitempty" db:"entity_type"`
	EntityID   NullUUID   `json:"entity_id,omitempty" db:"entity_id"`
	IPAddress  NullString `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  NullString `json:"user_agent,omitempty" db:"user_agent"`
	Details    NullString `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// NewAuditLog builds an audit entry for the given action and entity
func NewAuditLog(userID *uuid.UUID, action, entityType string, entityID *uuid.UUID) *AuditLog {
	entry := &AuditLog{Action: action}
	if userID != nil {
		entry.UserID = NewNullUUID(*userID)
	}
	if entityType != "" {
		entry.EntityType = NewNullString(entityType)
	}
	if entityID != nil {
		entry.EntityID = NewNullUUID(*entityID)
	}
	return entry
}
