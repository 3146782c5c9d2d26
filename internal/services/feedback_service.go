package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// FeedbackService routes feedback to exactly one of the two audiences:
// the agent who owns the booked package, or the guide who led the trip.
type FeedbackService struct {
	feedbackRepo *database.FeedbackRepository
	bookingRepo  *database.BookingRepository
	packageRepo  *database.PackageRepository
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	feedbackRepo *database.FeedbackRepository,
	bookingRepo *database.BookingRepository,
	packageRepo *database.PackageRepository,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		bookingRepo:  bookingRepo,
		packageRepo:  packageRepo,
	}
}

// resolveBooking loads the booking and checks the caller made it and the
// trip is over. Feedback only ever attaches to a finished booking.
func (s *FeedbackService) resolveBooking(travelerID uuid.UUID, bookingIDStr string) (*models.Booking, error) {
	bookingID, err := uuid.Parse(bookingIDStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid booking_id")
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeBookingNotFound, "booking not found")
		}
		return nil, apperrors.NewInternalError("failed to look up booking", err)
	}

	if booking.TravelerID != travelerID {
		return nil, apperrors.NewForbiddenError("only the traveler who made the booking may leave feedback")
	}

	if booking.Status != models.BookingStatusFinished {
		return nil, apperrors.NewConflictError("booking_not_finished", "feedback requires a finished booking")
	}

	return booking, nil
}

func (s *FeedbackService) guardDuplicate(bookingID uuid.UUID, kind models.FeedbackKind) error {
	exists, err := s.feedbackRepo.ExistsForBooking(bookingID, kind)
	if err != nil {
		return apperrors.NewInternalError("failed to check existing feedback", err)
	}
	if exists {
		return apperrors.NewConflictError("feedback_exists", "feedback for this booking and audience already exists")
	}
	return nil
}

// CreatePackageFeedback records feedback attributed to the agent who owns
// the booked package. The agent is derived from the booking, never taken
// from caller input.
func (s *FeedbackService) CreatePackageFeedback(travelerID uuid.UUID, req models.CreateFeedbackRequest) (*models.Feedback, error) {
	if err := models.ValidateRating(req.Rating); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	booking, err := s.resolveBooking(travelerID, req.BookingID)
	if err != nil {
		return nil, err
	}

	if err := s.guardDuplicate(booking.ID, models.FeedbackKindPackage); err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.GetByID(booking.PackageID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to resolve package owner", err)
	}

	feedback := models.NewPackageFeedback(booking.ID, travelerID, pkg.AgentID, req.Rating, req.Comment)
	if err := s.feedbackRepo.Create(feedback); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("feedback_exists", "feedback for this booking and audience already exists")
		}
		return nil, apperrors.NewInternalError("failed to create feedback", err)
	}

	return feedback, nil
}

// CreateGuideFeedback records feedback attributed to the booking's
// assigned guide. The requested guide must be the guide who actually led
// the trip; anything else would let a traveler pin feedback on an
// arbitrary guide.
func (s *FeedbackService) CreateGuideFeedback(travelerID uuid.UUID, req models.CreateGuideFeedbackRequest) (*models.Feedback, error) {
	if err := models.ValidateRating(req.Rating); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	guideID, err := uuid.Parse(req.GuideID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid guide_id")
	}

	booking, err := s.resolveBooking(travelerID, req.BookingID)
	if err != nil {
		return nil, err
	}

	if !booking.GuideID.Valid || booking.GuideID.UUID != guideID {
		return nil, apperrors.NewConflictError(apperrors.CodeGuideMismatch, "guide does not match the booking's assigned guide")
	}

	if err := s.guardDuplicate(booking.ID, models.FeedbackKindGuide); err != nil {
		return nil, err
	}

	feedback := models.NewGuideFeedback(booking.ID, travelerID, guideID, req.Rating, req.Comment)
	if err := s.feedbackRepo.Create(feedback); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("feedback_exists", "feedback for this booking and audience already exists")
		}
		return nil, apperrors.NewInternalError("failed to create feedback", err)
	}

	return feedback, nil
}

// ListForAgent retrieves package feedback about an agent's packages
func (s *FeedbackService) ListForAgent(agentID uuid.UUID) ([]models.FeedbackDetail, error) {
	feedbacks, err := s.feedbackRepo.ListForAgent(agentID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list agent feedback", err)
	}
	return feedbacks, nil
}

// ListForGuide retrieves feedback about a guide
func (s *FeedbackService) ListForGuide(guideID uuid.UUID) ([]models.FeedbackDetail, error) {
	feedbacks, err := s.feedbackRepo.ListForGuide(guideID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list guide feedback", err)
	}
	return feedbacks, nil
}

// Delete removes a feedback record. The caller must be the targeted
// audience member: the agent for package feedback about their packages,
// the guide for feedback about themself.
func (s *FeedbackService) Delete(callerID uuid.UUID, callerRole models.Role, feedbackID uuid.UUID) error {
	feedback, err := s.feedbackRepo.GetByID(feedbackID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeFeedbackNotFound, "feedback not found")
		}
		return apperrors.NewInternalError("failed to look up feedback", err)
	}

	switch feedback.Kind() {
	case models.FeedbackKindPackage:
		if callerRole != models.RoleTravelAgent || feedback.AgentID.UUID != callerID {
			return apperrors.NewForbiddenError("only the targeted agent may delete package feedback")
		}
	case models.FeedbackKindGuide:
		if callerRole != models.RoleGuide || feedback.GuideID.UUID != callerID {
			return apperrors.NewForbiddenError("only the targeted guide may delete guide feedback")
		}
	}

	if err := s.feedbackRepo.Delete(feedbackID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeFeedbackNotFound, "feedback not found")
		}
		return apperrors.NewInternalError("failed to delete feedback", err)
	}

	return nil
}
