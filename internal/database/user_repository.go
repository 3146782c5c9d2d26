package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tripmark/booking-backend/internal/models"
)

// SingleAdminConstraint is the partial unique index that allows at most
// one admin row. Its violation is distinguishable from the email unique
// constraint via UniqueConstraint.
const SingleAdminConstraint = "users_single_admin_idx"

// UserRepository handles account database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. A unique violation on email surfaces
// through IsUniqueViolation for the service to translate.
func (r *UserRepository) Create(user *models.User) error {
	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, status,
			photo_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.PhotoURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, name, email, password_hash, role, status,
		       photo_url, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	err := r.db.Get(&user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, name, email, password_hash, role, status,
		       photo_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.db.Get(&user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// CountByRole returns how many accounts hold the given role
func (r *UserRepository) CountByRole(role models.Role) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM users WHERE role = $1`

	err := r.db.QueryRow(query, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}

	return count, nil
}

// ListPendingAgents retrieves travel-agent accounts awaiting approval
func (r *UserRepository) ListPendingAgents() ([]models.User, error) {
	var users []models.User

	query := `
		SELECT id, name, email, password_hash, role, status,
		       photo_url, created_at, updated_at
		FROM users
		WHERE role = $1 AND status = $2
		ORDER BY created_at ASC
	`

	err := r.db.Select(&users, query, models.RoleTravelAgent, models.AccountStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending agents: %w", err)
	}

	return users, nil
}

// UpdateStatus updates the activation status of an account
func (r *UserRepository) UpdateStatus(id uuid.UUID, status models.AccountStatus) error {
	query := `
		UPDATE users
		SET status = $1,
		    updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
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

// Delete hard-deletes an account. Rejection is non-recoverable.
func (r *UserRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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
