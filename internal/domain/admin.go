// Package domain contains the core business entities for the Top Notes catalog.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the storefront backend.
package domain

import (
	"time"
)

// Admin represents an administrative principal of the storefront.
// Admins authenticate with a name and password and hold opaque bearer
// tokens for the admin API.
type Admin struct {
	// ID is the unique identifier for the admin (auto-generated).
	ID int64 `json:"id"`

	// Name is the unique login and display name.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the admin's password.
	// This must never be exposed in API responses.
	PasswordHash string `json:"-"`

	// IsStaff indicates whether the admin may use the admin API surface.
	IsStaff bool `json:"is_staff"`

	// IsSuperuser indicates whether the admin may provision other admins.
	IsSuperuser bool `json:"is_superuser"`

	// IsActive indicates whether the account is enabled.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the admin was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the admin was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// SetPassword replaces the stored password hash.
func (a *Admin) SetPassword(passwordHash string) {
	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now().UTC()
}

// CanAuthenticate reports whether the account may log in.
func (a *Admin) CanAuthenticate() bool {
	return a.IsActive
}

// NewAdmin creates a new Admin with default values.
func NewAdmin(name, passwordHash string) *Admin {
	now := time.Now().UTC()
	return &Admin{
		Name:         name,
		PasswordHash: passwordHash,
		IsStaff:      false,
		IsSuperuser:  false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
