package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/internal/utils"
)

// AuditService records security and lifecycle events. Writes are best
// effort: a failed insert is logged and never propagated to the caller.
type AuditService struct {
	auditRepo *database.AuditLogRepository
	logger    *logrus.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo *database.AuditLogRepository, logger *logrus.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// LogRegistration records a completed account registration
func (s *AuditService) LogRegistration(userID uuid.UUID, role models.Role, ipAddress, userAgent string) {
	s.logEvent(&userID, "register", "user", &userID, ipAddress, userAgent, map[string]interface{}{
		"role": role,
	})
}

// LogLogin records an authentication attempt
func (s *AuditService) LogLogin(userID *uuid.UUID, email string, success bool, reason, ipAddress, userAgent string) {
	action := "login_failed"
	if success {
		action = "login_success"
	}

	details := map[string]interface{}{
		"email":   email,
		"success": success,
	}
	if !success && reason != "" {
		details["reason"] = reason
	}

	s.logEvent(userID, action, "user", userID, ipAddress, userAgent, details)
}

// LogApproval records an admin approving a pending travel agent
func (s *AuditService) LogApproval(adminID, agentID uuid.UUID, ipAddress, userAgent string) {
	s.logEvent(&adminID, "agent_approved", "user", &agentID, ipAddress, userAgent, nil)
}

// LogRejection records an admin rejecting a pending travel agent
func (s *AuditService) LogRejection(adminID, agentID uuid.UUID, ipAddress, userAgent string) {
	s.logEvent(&adminID, "agent_rejected", "user", &agentID, ipAddress, userAgent, nil)
}

// LogBookingTransition records a booking status change
func (s *AuditService) LogBookingTransition(actorID, bookingID uuid.UUID, to models.BookingStatus, ipAddress, userAgent string) {
	s.logEvent(&actorID, "booking_status_change", "booking", &bookingID, ipAddress, userAgent, map[string]interface{}{
		"status": to,
	})
}

func (s *AuditService) logEvent(userID *uuid.UUID, action, entityType string, entityID *uuid.UUID, ipAddress, userAgent string, details map[string]interface{}) {
	if s == nil {
		return
	}

	entry := models.NewAuditLog(userID, action, entityType, entityID)
	if ipAddress != "" {
		entry.IPAddress = models.NewNullString(ipAddress)
	}
	if userAgent != "" {
		entry.UserAgent = models.NewNullString(userAgent)
		if details == nil {
			details = make(map[string]interface{})
		}
		details["device_info"] = utils.ParseUserAgent(userAgent)
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.WithError(err).Warn("failed to encode audit details")
		} else {
			entry.Details = models.NewNullString(string(raw))
		}
	}

	if err := s.auditRepo.Insert(entry); err != nil {
		s.logger.WithError(err).WithField("action", action).Warn("failed to write audit log")
	}
}
