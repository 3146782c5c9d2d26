package models

import (
	"time"

	"github.com/google/uuid"
)

// TripPackage represents a sellable trip offering owned by one travel agent.
// Mutation of packages is handled elsewhere; the booking flow only reads
// the unit price and the owner.
type TripPackage struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AgentID      uuid.UUID  `json:"agent_id" db:"agent_id"`
	Name         string     `json:"name" db:"name"`
	Description  NullString `json:"description,omitempty" db:"description"`
	Destination  NullString `json:"destination,omitempty" db:"destination"`
	UnitPrice    float64    `json:"unit_price" db:"unit_price"`
	DurationDays int        `json:"duration_days" db:"duration_days"`
	MaxGroupSize int        `json:"max_group_size" db:"max_group_size"`
	PhotoURL     NullString `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
