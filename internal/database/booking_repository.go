package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/models"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingDetailColumns = `
	b.id, b.traveler_id, b.package_id, b.guide_id, b.travel_date,
	b.party_size, b.total_price, b.status, b.payment_status,
	b.payment_method, b.created_at, b.updated_at,
	p.name AS package_name,
	t.name AS traveler_name,
	g.name AS guide_name
`

const bookingDetailJoins = `
	FROM bookings b
	JOIN packages p ON p.id = b.package_id
	JOIN users t ON t.id = b.traveler_id
	LEFT JOIN users g ON g.id = b.guide_id
`

// Create inserts a new booking. The total price is the snapshot computed
// at creation time and is never recomputed from the live package price.
func (r *BookingRepository) Create(booking *models.Booking) error {
	now := time.Now()
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
		INSERT INTO bookings (
			id, traveler_id, package_id, guide_id, travel_date,
			party_size, total_price, status, payment_status,
			payment_method, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(
		query,
		booking.ID,
		booking.TravelerID,
		booking.PackageID,
		booking.GuideID,
		booking.TravelDate,
		booking.PartySize,
		booking.TotalPrice,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking

	query := `
		SELECT id, traveler_id, package_id, guide_id, travel_date,
		       party_size, total_price, status, payment_status,
		       payment_method, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	err := r.db.Get(&booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// UpdateStatus moves a booking to a new status. The caller has already
// checked the transition is legal for the current state; the WHERE clause
// on the expected current status keeps a concurrent transition from
// clobbering this one.
func (r *BookingRepository) UpdateStatus(id uuid.UUID, from, to models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1,
		    updated_at = $2
		WHERE id = $3 AND status = $4
	`

	result, err := r.db.Exec(query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
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

// ListByTraveler retrieves a traveler's bookings with display fields, newest first
func (r *BookingRepository) ListByTraveler(travelerID uuid.UUID) ([]models.BookingDetail, error) {
	var bookings []models.BookingDetail

	query := `SELECT ` + bookingDetailColumns + bookingDetailJoins + `
		WHERE b.traveler_id = $1
		ORDER BY b.created_at DESC
	`

	err := r.db.Select(&bookings, query, travelerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for traveler: %w", err)
	}

	return bookings, nil
}

// ListByGuideAndStatus retrieves bookings assigned to a guide in the given
// status. The assignments view passes confirmed: a guide sees a booking
// only between agent confirmation and trip completion.
func (r *BookingRepository) ListByGuideAndStatus(guideID uuid.UUID, status models.BookingStatus) ([]models.BookingDetail, error) {
	var bookings []models.BookingDetail

	query := `SELECT ` + bookingDetailColumns + bookingDetailJoins + `
		WHERE b.guide_id = $1 AND b.status = $2
		ORDER BY b.travel_date ASC
	`

	err := r.db.Select(&bookings, query, guideID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for guide: %w", err)
	}

	return bookings, nil
}

// ListAll retrieves every booking with display fields, newest first
func (r *BookingRepository) ListAll() ([]models.BookingDetail, error) {
	var bookings []models.BookingDetail

	query := `SELECT ` + bookingDetailColumns + bookingDetailJoins + `
		ORDER BY b.created_at DESC
	`

	err := r.db.Select(&bookings, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}
