package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// BookingService implements the booking lifecycle state machine
type BookingService struct {
	bookingRepo *database.BookingRepository
	packageRepo *database.PackageRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo *database.BookingRepository, packageRepo *database.PackageRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
	}
}

// Create books a package for a traveler. The total price is computed once
// from the package's current unit price and persisted as a snapshot.
func (s *BookingService) Create(travelerID uuid.UUID, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid package_id")
	}

	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodePackageNotFound, "package not found")
		}
		return nil, apperrors.NewInternalError("failed to look up package", err)
	}

	travelDate, _ := time.Parse("2006-01-02", req.TravelDate)

	partySize := req.PartySize
	if partySize < 1 {
		partySize = 1
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		TravelerID:    travelerID,
		PackageID:     pkg.ID,
		TravelDate:    travelDate,
		PartySize:     partySize,
		TotalPrice:    ComputeTotal(pkg.UnitPrice, partySize),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}

	if req.GuideID != nil && *req.GuideID != "" {
		guideID, err := uuid.Parse(*req.GuideID)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid guide_id")
		}
		booking.GuideID = models.NewNullUUID(guideID)
	}

	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		booking.PaymentMethod = models.NewNullString(*req.PaymentMethod)
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFoundError(apperrors.CodePackageNotFound, "referenced entity not found")
		}
		return nil, apperrors.NewInternalError("failed to create booking", err)
	}

	return booking, nil
}

// UpdateStatus transitions a booking. The transition table decides which
// role may drive each move; on top of that the caller must actually own
// the resource: the package's agent for pending decisions, the assigned
// guide for completion.
func (s *BookingService) UpdateStatus(callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID, newStatus models.BookingStatus) (*models.Booking, error) {
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError("unknown booking status: " + string(newStatus))
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeBookingNotFound, "booking not found")
		}
		return nil, apperrors.NewInternalError("failed to look up booking", err)
	}

	requiredRole, ok := models.TransitionActor(booking.Status, newStatus)
	if !ok {
		return nil, apperrors.NewConflictError(apperrors.CodeIllegalTransition,
			"cannot move booking from "+string(booking.Status)+" to "+string(newStatus))
	}

	if callerRole != requiredRole {
		return nil, apperrors.NewForbiddenError("this transition is not allowed for your role")
	}

	switch requiredRole {
	case models.RoleTravelAgent:
		pkg, err := s.packageRepo.GetByID(booking.PackageID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to look up package", err)
		}
		if pkg.AgentID != callerID {
			return nil, apperrors.NewForbiddenError("only the package's owning agent may decide this booking")
		}
	case models.RoleGuide:
		if !booking.GuideID.Valid || booking.GuideID.UUID != callerID {
			return nil, apperrors.NewForbiddenError("only the assigned guide may complete this booking")
		}
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, booking.Status, newStatus); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// A concurrent transition moved the booking first
			return nil, apperrors.NewConflictError(apperrors.CodeIllegalTransition, "booking status changed concurrently")
		}
		return nil, apperrors.NewInternalError("failed to update booking status", err)
	}

	booking.Status = newStatus
	return booking, nil
}

// ListForTraveler retrieves a traveler's bookings
func (s *BookingService) ListForTraveler(travelerID uuid.UUID) ([]models.BookingDetail, error) {
	bookings, err := s.bookingRepo.ListByTraveler(travelerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}

// ListForGuide retrieves a guide's confirmed assignments. A guide sees a
// booking only after the agent has confirmed it and only until the trip
// is finished.
func (s *BookingService) ListForGuide(guideID uuid.UUID) ([]models.BookingDetail, error) {
	bookings, err := s.bookingRepo.ListByGuideAndStatus(guideID, models.BookingStatusConfirmed)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list guide assignments", err)
	}
	return bookings, nil
}

// ListAll retrieves every booking for dashboard views
func (s *BookingService) ListAll() ([]models.BookingDetail, error) {
	bookings, err := s.bookingRepo.ListAll()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}
