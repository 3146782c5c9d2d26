package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry represents a (traveler, package) membership pair,
// unique per pair.
type WishlistEntry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TravelerID uuid.UUID `json:"traveler_id" db:"traveler_id"`
	PackageID  uuid.UUID `json:"package_id" db:"package_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// WishlistItem is a wishlist entry joined with package display fields
type WishlistItem struct {
	WishlistEntry
	PackageName  string     `json:"package_name" db:"package_name"`
	UnitPrice    float64    `json:"unit_price" db:"unit_price"`
	Destination  NullString `json:"destination,omitempty" db:"destination"`
	PackagePhoto NullString `json:"package_photo,omitempty" db:"package_photo"`
}

// ToggleWishlistRequest represents the request to toggle membership
type ToggleWishlistRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}
