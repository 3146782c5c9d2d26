package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/models"
)

// FeedbackRepository handles database operations for feedback records.
// The table keeps the nullable-column shape (agent_id XOR guide_id);
// the discriminated kind lives only in the model layer.
type FeedbackRepository struct {
	db DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback record
func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	feedback.CreatedAt = time.Now()

	query := `
		INSERT INTO feedbacks (
			id, booking_id, traveler_id, agent_id, guide_id,
			rating, comment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		feedback.ID,
		feedback.BookingID,
		feedback.TravelerID,
		feedback.AgentID,
		feedback.GuideID,
		feedback.Rating,
		feedback.Comment,
		feedback.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// GetByID retrieves a feedback record by ID
func (r *FeedbackRepository) GetByID(id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback

	query := `
		SELECT id, booking_id, traveler_id, agent_id, guide_id,
		       rating, comment, created_at
		FROM feedbacks
		WHERE id = $1
	`

	err := r.db.Get(&feedback, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return &feedback, nil
}

// ExistsForBooking reports whether the booking already has feedback for
// the given audience. One record per (booking, audience).
func (r *FeedbackRepository) ExistsForBooking(bookingID uuid.UUID, kind models.FeedbackKind) (bool, error) {
	var exists bool

	column := "agent_id"
	if kind == models.FeedbackKindGuide {
		column = "guide_id"
	}

	query := `SELECT EXISTS (SELECT 1 FROM feedbacks WHERE booking_id = $1 AND ` + column + ` IS NOT NULL)`

	err := r.db.QueryRow(query, bookingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check feedback existence: %w", err)
	}

	return exists, nil
}

// ListForAgent retrieves package feedback for an agent with display
// fields, newest first. Guide feedback never leaks into this view.
func (r *FeedbackRepository) ListForAgent(agentID uuid.UUID) ([]models.FeedbackDetail, error) {
	var feedbacks []models.FeedbackDetail

	query := `
		SELECT f.id, f.booking_id, f.traveler_id, f.agent_id, f.guide_id,
		       f.rating, f.comment, f.created_at,
		       p.name AS package_name,
		       t.name AS traveler_name,
		       t.photo_url AS traveler_photo
		FROM feedbacks f
		JOIN bookings b ON b.id = f.booking_id
		JOIN packages p ON p.id = b.package_id
		JOIN users t ON t.id = f.traveler_id
		WHERE f.agent_id = $1 AND f.guide_id IS NULL
		ORDER BY f.created_at DESC
	`

	err := r.db.Select(&feedbacks, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback for agent: %w", err)
	}

	return feedbacks, nil
}

// ListForGuide retrieves guide feedback for a guide with display fields,
// newest first. Package feedback never leaks into this view.
func (r *FeedbackRepository) ListForGuide(guideID uuid.UUID) ([]models.FeedbackDetail, error) {
	var feedbacks []models.FeedbackDetail

	query := `
		SELECT f.id, f.booking_id, f.traveler_id, f.agent_id, f.guide_id,
		       f.rating, f.comment, f.created_at,
		       p.name AS package_name,
		       t.name AS traveler_name,
		       t.photo_url AS traveler_photo
		FROM feedbacks f
		JOIN bookings b ON b.id = f.booking_id
		JOIN packages p ON p.id = b.package_id
		JOIN users t ON t.id = f.traveler_id
		WHERE f.guide_id = $1 AND f.agent_id IS NULL
		ORDER BY f.created_at DESC
	`

	err := r.db.Select(&feedbacks, query, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback for guide: %w", err)
	}

	return feedbacks, nil
}

// Delete removes a feedback record
func (r *FeedbackRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM feedbacks WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
