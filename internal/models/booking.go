package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusFinished  BookingStatus = "finished"
)

// PaymentStatus represents the recorded payment state of a booking.
// Payment is never processed here; the intended method is recorded only.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// IsValid reports whether the status is one of the known booking states
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusFinished:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions may leave this state
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusFinished
}

type bookingTransition struct {
	from, to BookingStatus
}

// transitionActor maps each legal transition to the role that may drive it.
// The owning agent decides a pending booking; the assigned guide closes a
// confirmed one. Anything absent from the table is illegal.
var transitionActor = map[bookingTransition]Role{
	{BookingStatusPending, BookingStatusConfirmed}:  RoleTravelAgent,
	{BookingStatusPending, BookingStatusCancelled}:  RoleTravelAgent,
	{BookingStatusConfirmed, BookingStatusFinished}: RoleGuide,
}

// TransitionActor returns the role allowed to move a booking from one
// status to another, or false when the transition is not in the table.
func TransitionActor(from, to BookingStatus) (Role, bool) {
	role, ok := transitionActor[bookingTransition{from, to}]
	return role, ok
}

// Booking represents a traveler's reservation against a package
type Booking struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	TravelerID    uuid.UUID     `json:"traveler_id" db:"traveler_id"`
	PackageID     uuid.UUID     `json:"package_id" db:"package_id"`
	GuideID       NullUUID      `json:"guide_id,omitempty" db:"guide_id"`
	TravelDate    time.Time     `json:"travel_date" db:"travel_date"`
	PartySize     int           `json:"party_size" db:"party_size"`
	TotalPrice    float64       `json:"total_price" db:"total_price"`
	Status        BookingStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod NullString    `json:"payment_method,omitempty" db:"payment_method"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingDetail is a booking joined with display fields for listings
type BookingDetail struct {
	Booking
	PackageName  string     `json:"package_name" db:"package_name"`
	TravelerName string     `json:"traveler_name" db:"traveler_name"`
	GuideName    NullString `json:"guide_name,omitempty" db:"guide_name"`
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	PackageID     string  `json:"package_id" binding:"required"`
	GuideID       *string `json:"guide_id,omitempty"`
	TravelDate    string  `json:"travel_date" binding:"required"`
	PartySize     int     `json:"party_size"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.PartySize < 0 {
		return errors.New("party_size cannot be negative")
	}
	if _, err := time.Parse("2006-01-02", r.TravelDate); err != nil {
		return errors.New("travel_date must be in YYYY-MM-DD format")
	}
	return nil
}

// UpdateBookingStatusRequest represents the request to transition a booking
type UpdateBookingStatusRequest struct {
	BookingID string        `json:"booking_id" binding:"required"`
	Status    BookingStatus `json:"status" binding:"required"`
}
