package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/models"
)

// PackageRepository handles read access to trip packages. The booking
// flow only ever reads a package; package mutation lives elsewhere.
type PackageRepository struct {
	db DB
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// GetByID retrieves a package by ID
func (r *PackageRepository) GetByID(id uuid.UUID) (*models.TripPackage, error) {
	var pkg models.TripPackage

	query := `
		SELECT id, agent_id, name, description, destination,
		       unit_price, duration_days, max_group_size, photo_url,
		       created_at, updated_at
		FROM packages
		WHERE id = $1
	`

	err := r.db.Get(&pkg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return &pkg, nil
}

// List retrieves all packages, newest first
func (r *PackageRepository) List() ([]models.TripPackage, error) {
	var pkgs []models.TripPackage

	query := `
		SELECT id, agent_id, name, description, destination,
		       unit_price, duration_days, max_group_size, photo_url,
		       created_at, updated_at
		FROM packages
		ORDER BY created_at DESC
	`

	err := r.db.Select(&pkgs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return pkgs, nil
}
