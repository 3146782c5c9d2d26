package database

import (
	"fmt"
	"time"

	"github.com/tripmark/booking-backend/internal/models"
)

// AuditLogRepository handles database operations for audit log entries
type AuditLogRepository struct {
	db DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Insert appends an audit entry
func (r *AuditLogRepository) Insert(entry *models.AuditLog) error {
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO audit_logs (
			user_id, action, entity_type, entity_id,
			ip_address, user_agent, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.IPAddress,
		entry.UserAgent,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}
