package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FeedbackKind discriminates the two feedback audiences at the application
// layer. Storage keeps the historical nullable-column shape (agent_id set
// XOR guide_id set); the repository maps between the two.
type FeedbackKind string

const (
	// FeedbackKindPackage targets the agent who owns the booked package
	FeedbackKindPackage FeedbackKind = "package"
	// FeedbackKindGuide targets the guide who led the trip
	FeedbackKindGuide FeedbackKind = "guide"
)

// Feedback represents a rating tied to one completed booking and exactly
// one of the two audiences.
type Feedback struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookingID  uuid.UUID  `json:"booking_id" db:"booking_id"`
	TravelerID uuid.UUID  `json:"traveler_id" db:"traveler_id"`
	AgentID    NullUUID   `json:"agent_id,omitempty" db:"agent_id"`
	GuideID    NullUUID   `json:"guide_id,omitempty" db:"guide_id"`
	Rating     int        `json:"rating" db:"rating"`
	Comment    NullString `json:"comment,omitempty" db:"comment"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Kind derives the audience from which target column is populated
func (f *Feedback) Kind() FeedbackKind {
	if f.AgentID.Valid {
		return FeedbackKindPackage
	}
	return FeedbackKindGuide
}

// IsExclusive reports whether exactly one target audience is set
func (f *Feedback) IsExclusive() bool {
	return f.AgentID.Valid != f.GuideID.Valid
}

// NewPackageFeedback builds feedback attributed to the package's owning agent
func NewPackageFeedback(bookingID, travelerID, agentID uuid.UUID, rating int, comment string) *Feedback {
	f := &Feedback{
		ID:         uuid.New(),
		BookingID:  bookingID,
		TravelerID: travelerID,
		AgentID:    NewNullUUID(agentID),
		Rating:     rating,
	}
	if comment != "" {
		f.Comment = NewNullString(comment)
	}
	return f
}

// NewGuideFeedback builds feedback attributed to the booking's assigned guide
func NewGuideFeedback(bookingID, travelerID, guideID uuid.UUID, rating int, comment string) *Feedback {
	f := &Feedback{
		ID:         uuid.New(),
		BookingID:  bookingID,
		TravelerID: travelerID,
		GuideID:    NewNullUUID(guideID),
		Rating:     rating,
	}
	if comment != "" {
		f.Comment = NewNullString(comment)
	}
	return f
}

// FeedbackDetail is a feedback row joined with display fields
type FeedbackDetail struct {
	Feedback
	PackageName   NullString `json:"package_name,omitempty" db:"package_name"`
	TravelerName  string     `json:"traveler_name" db:"traveler_name"`
	TravelerPhoto NullString `json:"traveler_photo,omitempty" db:"traveler_photo"`
}

// CreateFeedbackRequest represents the request to submit package feedback
type CreateFeedbackRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// CreateGuideFeedbackRequest represents the request to submit guide feedback
type CreateGuideFeedbackRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	GuideID   string `json:"guide_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ValidateRating checks the shared rating bounds
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
