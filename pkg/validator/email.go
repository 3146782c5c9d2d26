package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// EmailValidator validates and normalizes account e-mail addresses
type EmailValidator struct{}

// NewEmailValidator creates a new email validator
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{}
}

// Normalize lowercases and trims an address without validating it
func (v *EmailValidator) Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the address syntax and returns the normalized form
func (v *EmailValidator) Validate(email string) (string, error) {
	normalized := v.Normalize(email)
	if normalized == "" {
		return "", fmt.Errorf("email is required")
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil {
		return "", fmt.Errorf("invalid email address: %s", email)
	}

	// Reject "Name <addr>" forms; only the bare address is an identity
	if addr.Address != normalized {
		return "", fmt.Errorf("invalid email address: %s", email)
	}

	if !strings.Contains(strings.SplitN(normalized, "@", 2)[1], ".") {
		return "", fmt.Errorf("invalid email address: %s", email)
	}

	return normalized, nil
}
