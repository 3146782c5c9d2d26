package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the marketplace an account operates on
type Role string

const (
	RoleTraveler    Role = "traveler"
	RoleAdmin       Role = "admin"
	RoleTravelAgent Role = "travel_agent"
	RoleGuide       Role = "guide"
)

// AccountStatus represents the activation state of an account
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
)

// initialStatus maps each role to the status assigned at registration.
// Travel agents must pass the admin approval gate before they can log in.
var initialStatus = map[Role]AccountStatus{
	RoleTraveler:    AccountStatusApproved,
	RoleAdmin:       AccountStatusApproved,
	RoleTravelAgent: AccountStatusPending,
	RoleGuide:       AccountStatusApproved,
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	_, ok := initialStatus[r]
	return ok
}

// InitialStatus returns the account status a new account of this role starts in
func (r Role) InitialStatus() AccountStatus {
	return initialStatus[r]
}

// User represents an account in the marketplace
type User struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	Email        string        `json:"email" db:"email"`
	PasswordHash string        `json:"-" db:"password_hash"`
	Role         Role          `json:"role" db:"role"`
	Status       AccountStatus `json:"status" db:"status"`
	PhotoURL     NullString    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required"`
}

// LoginRequest represents the request to authenticate.
// Role is the role the caller intends to operate as and is cross-checked
// against the stored role rather than inferred from it.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
}

// LoginResponse carries the issued token and the resolved identity
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// LoginUser is the identity subset returned on login
type LoginUser struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}
