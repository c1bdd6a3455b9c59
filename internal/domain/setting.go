// Package domain contains the core business entities for the Top Notes catalog.
package domain

import (
	"fmt"
	"time"
)

// Setting is a single key/value pair of the storefront settings store.
// Keys are unique; writes are upserts (create-if-absent else update value).
type Setting struct {
	// ID is the unique identifier for the setting (auto-generated).
	ID int64 `json:"id"`

	// Key is the unique setting key.
	Key string `json:"key"`

	// Value is the setting value. Empty strings are legal values.
	Value string `json:"value"`

	// Description is a human-readable note about the setting.
	Description string `json:"description"`

	// CreatedAt is the timestamp when the setting was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the setting was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSetting creates a setting with the default description.
func NewSetting(key, value string) *Setting {
	now := time.Now().UTC()
	return &Setting{
		Key:         key,
		Value:       value,
		Description: fmt.Sprintf("Setting for %s", key),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
