package resident

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("resident not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveResident   = errors.New("resident is inactive")
)

// Resident is a member of the condominium who can request amenity bookings.
// Administrators additionally approve or reject requests and maintain the
// amenity catalogue.
type Resident struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Unit         string // apartment unit, e.g. "12B"
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing residents.
type Filter struct {
	Keyword  string // matched against display name and unit
	Page     int
	PageSize int
}
