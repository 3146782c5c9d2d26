package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NullString wraps sql.NullString to provide proper JSON marshaling
type NullString struct {
	sql.NullString
}

// NewNullString creates a valid NullString from a plain string
func NewNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

// MarshalJSON implements json.Marshaler
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.String)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		ns.Valid = true
		ns.String = *s
	} else {
		ns.Valid = false
	}
	return nil
}

// NullTime wraps sql.NullTime to provide proper JSON marshaling
type NullTime struct {
	sql.NullTime
}

// MarshalJSON implements json.Marshaler
func (nt NullTime) MarshalJSON() ([]byte, error) {
	if nt.Valid {
		return json.Marshal(nt.Time)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (nt *NullTime) UnmarshalJSON(data []byte) error {
	var t *time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	if t != nil {
		nt.Valid = true
		nt.Time = *t
	} else {
		nt.Valid = false
	}
	return nil
}

// NullUUID wraps uuid.NullUUID to provide proper JSON marshaling
type NullUUID struct {
	uuid.NullUUID
}

// NewNullUUID creates a valid NullUUID from a plain UUID
func NewNullUUID(id uuid.UUID) NullUUID {
	return NullUUID{uuid.NullUUID{UUID: id, Valid: true}}
}

// MarshalJSON implements json.Marshaler
func (nu NullUUID) MarshalJSON() ([]byte, error) {
	if nu.Valid {
		return json.Marshal(nu.UUID)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (nu *NullUUID) UnmarshalJSON(data []byte) error {
	var id *uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if id != nil {
		nu.Valid = true
		nu.UUID = *id
	} else {
		nu.Valid = false
	}
	return nil
}

// Value implements driver.Valuer
func (nu NullUUID) Value() (driver.Value, error) {
	return nu.NullUUID.Value()
}
