// Package domain contains the core business entities for the Top Notes catalog.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stock status buckets recognized by the catalog filters. The stored
// stockStatus column is free-form text; comparisons are case-insensitive.
const (
	StockStatusInStock    = "In Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusOutOfStock = "Out of Stock"
)

// ResolveStockStatus maps a filter value to its logical bucket.
// Known bucket codes (out_of_stock, in_stock, low_stock) map to the
// canonical labels; anything else is matched literally, case-insensitively.
func ResolveStockStatus(filter string) string {
	switch strings.ToLower(filter) {
	case "out_of_stock":
		return StockStatusOutOfStock
	case "in_stock":
		return StockStatusInStock
	case "low_stock":
		return StockStatusLowStock
	default:
		return filter
	}
}

// Bilingual holds the English and Arabic variants of a text field.
// Stored and serialized flat (nameEn/nameAr and friends); structured here
// so the query engine can select by language without string suffixes.
type Bilingual struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// ByLanguage returns the Arabic variant when language is "ar",
// the English variant otherwise.
func (b Bilingual) ByLanguage(language string) string {
	if language == "ar" {
		return b.Ar
	}
	return b.En
}

// SizeTier is one purchasable size of a perfume.
type SizeTier struct {
	// Size is the size label, e.g. "50ml".
	Size string `json:"size"`

	// PriceEGP is the price in Egyptian pounds. Never negative.
	PriceEGP float64 `json:"priceEGP"`
}

// Perfume is a catalog record.
// The catalog store exclusively owns perfumes; no other entity references
// them, so a hard delete has no cascading concerns.
type Perfume struct {
	// ID is the globally unique identifier.
	ID uuid.UUID `json:"id"`

	Name        Bilingual `json:"name"`
	Brand       Bilingual `json:"brand"`
	Category    Bilingual `json:"category"`
	Gender      Bilingual `json:"gender"`
	Description Bilingual `json:"description"`

	// Sizes is always a sequence, never nil (empty allowed).
	Sizes []SizeTier `json:"sizes"`

	// StockStatus is a free-form label compared case-insensitively
	// against the known buckets.
	StockStatus string `json:"stockStatus"`

	// ImageURL is the optional product image location.
	ImageURL *string `json:"imageUrl"`

	// IsNew marks the record for the storefront's "new" badge.
	IsNew bool `json:"isNew"`

	// IsBestseller marks the record for the storefront's "bestseller" badge.
	IsBestseller bool `json:"isBestseller"`

	// IsActive soft-hides the record from the public surface when false.
	// This is not a delete.
	IsActive bool `json:"isActive"`

	// CreatedAt is the timestamp when the perfume was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the perfume was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch bumps the update timestamp.
func (p *Perfume) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// NewPerfume creates a perfume with a fresh ID and default flags.
func NewPerfume() *Perfume {
	now := time.Now().UTC()
	return &Perfume{
		ID:        uuid.New(),
		Sizes:     []SizeTier{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
