// Package domain contains the core business entities for the Top Notes catalog.
package domain

import (
	"time"
)

// AuthToken is an opaque bearer credential owned by exactly one admin.
// A principal holds at most one token at a time: login returns the existing
// token when present and creates one otherwise. Tokens have no expiry and
// are deleted in bulk when the owner rotates their password.
type AuthToken struct {
	// Key is the opaque 40-character hex token value (primary key).
	Key string `json:"key"`

	// AdminID is the ID of the owning admin.
	AdminID int64 `json:"admin_id"`

	// CreatedAt is the timestamp when the token was issued.
	CreatedAt time.Time `json:"created_at"`
}

// NewAuthToken creates a token for the given admin.
func NewAuthToken(key string, adminID int64) *AuthToken {
	return &AuthToken{
		Key:       key,
		AdminID:   adminID,
		CreatedAt: time.Now().UTC(),
	}
}
