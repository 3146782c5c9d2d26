package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/models"
)

// WishlistRepository handles database operations for wishlist entries.
// Add and Remove are each a single conditional statement, so two
// concurrent toggles on the same pair degrade to a no-op instead of a
// constraint error.
type WishlistRepository struct {
	db DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add inserts a membership pair. Returns false when the pair already
// exists (a concurrent toggle won the race).
func (r *WishlistRepository) Add(travelerID, packageID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO wishlists (id, traveler_id, package_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (traveler_id, package_id) DO NOTHING
	`

	result, err := r.db.Exec(query, uuid.New(), travelerID, packageID, time.Now())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, err
		}
		return false, fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Remove deletes a membership pair. Returns false when the pair was
// already absent.
func (r *WishlistRepository) Remove(travelerID, packageID uuid.UUID) (bool, error) {
	query := `DELETE FROM wishlists WHERE traveler_id = $1 AND package_id = $2`

	result, err := r.db.Exec(query, travelerID, packageID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ListByTraveler retrieves a traveler's wishlist joined with package
// display fields, newest first
func (r *WishlistRepository) ListByTraveler(travelerID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem

	query := `
		SELECT w.id, w.traveler_id, w.package_id, w.created_at,
		       p.name AS package_name,
		       p.unit_price,
		       p.destination,
		       p.photo_url AS package_photo
		FROM wishlists w
		JOIN packages p ON p.id = w.package_id
		WHERE w.traveler_id = $1
		ORDER BY w.created_at DESC
	`

	err := r.db.Select(&items, query, travelerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	return items, nil
}
