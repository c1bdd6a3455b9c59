// Package repository defines data access interfaces for the Top Notes catalog.
// These interfaces abstract database operations, allowing for different
// implementations (SQLite for embedded deployments, PostgreSQL for servers,
// in-memory for testing) while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/topnotes/catalog-api/internal/domain"
)

// =============================================================================
// Admin Repository
// =============================================================================

// AdminRepository defines the interface for admin principal data access.
type AdminRepository interface {
	// Create creates a new admin.
	Create(ctx context.Context, admin *domain.Admin) error

	// GetByID retrieves an admin by ID.
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)

	// GetByName retrieves an admin by login name.
	GetByName(ctx context.Context, name string) (*domain.Admin, error)

	// Update updates an existing admin.
	Update(ctx context.Context, admin *domain.Admin) error

	// List returns all admins ordered by creation time.
	List(ctx context.Context) ([]*domain.Admin, error)

	// ExistsByName checks if an admin with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// =============================================================================
// Token Repository
// =============================================================================

// TokenRepository defines the interface for auth token data access.
type TokenRepository interface {
	// Create creates a new token. Returns domain.ErrTokenAlreadyExists when
	// the admin already holds a token (admin_id is unique).
	Create(ctx context.Context, token *domain.AuthToken) error

	// GetByKey retrieves a token by its opaque key.
	GetByKey(ctx context.Context, key string) (*domain.AuthToken, error)

	// GetByAdminID retrieves the token held by an admin, if any.
	GetByAdminID(ctx context.Context, adminID int64) (*domain.AuthToken, error)

	// DeleteByAdminID deletes every token held by an admin.
	// Used on password rotation to force re-login everywhere.
	DeleteByAdminID(ctx context.Context, adminID int64) error
}

// =============================================================================
// Setting Repository
// =============================================================================

// SettingRepository defines the interface for settings data access.
type SettingRepository interface {
	// GetAll returns every setting.
	GetAll(ctx context.Context) ([]*domain.Setting, error)

	// GetByKey retrieves a setting by key.
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)

	// Upsert creates the setting if absent, else updates its value.
	// The description is only written on first insert.
	Upsert(ctx context.Context, setting *domain.Setting) error
}

// =============================================================================
// Perfume Repository
// =============================================================================

// PerfumeFilter narrows a perfume list query. Zero-valued fields are
// ignored; set fields are AND-combined.
type PerfumeFilter struct {
	// ActiveOnly restricts results to isActive records (public surface).
	ActiveOnly bool

	// Language selects the Arabic columns when "ar", English otherwise.
	Language string

	// SearchTerm is matched as a case-insensitive substring of the
	// language-selected name.
	SearchTerm string

	// Brand is matched exactly against the language-selected brand.
	Brand string

	// Category is matched exactly against the language-selected category.
	Category string

	// Gender is matched exactly against the language-selected gender.
	Gender string

	// StockStatus is matched case-insensitively against the stored label.
	// Callers resolve bucket codes with domain.ResolveStockStatus first.
	StockStatus string
}

// PerfumeRepository defines the interface for perfume data access.
type PerfumeRepository interface {
	// Create creates a new perfume.
	Create(ctx context.Context, perfume *domain.Perfume) error

	// GetByID retrieves a perfume by ID regardless of active state.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Perfume, error)

	// GetActiveByID retrieves an active perfume by ID.
	// Inactive records are reported as ErrNotFound.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Perfume, error)

	// List returns perfumes matching the filter, newest first,
	// sliced by the pagination options.
	List(ctx context.Context, filter PerfumeFilter, opts ListOptions) (*ListResult[domain.Perfume], error)

	// Update updates an existing perfume.
	Update(ctx context.Context, perfume *domain.Perfume) error

	// Delete hard-deletes a perfume by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DistinctBrands returns the distinct non-empty language-selected
	// brand values over active records, sorted ascending.
	DistinctBrands(ctx context.Context, language string) ([]string, error)

	// DistinctCategories returns the distinct non-empty language-selected
	// category values over active records, sorted ascending.
	DistinctCategories(ctx context.Context, language string) ([]string, error)
}

// =============================================================================
// Common Types
// =============================================================================

// ListOptions contains common pagination options.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return.
	Limit int
}

// ListResult is a generic paginated list result.
type ListResult[T any] struct {
	// Items is the list of items.
	Items []*T

	// Total is the total number of items (without pagination).
	Total int64

	// Offset is the current offset.
	Offset int

	// Limit is the current limit.
	Limit int
}

// DatabaseHealth is an interface for database health checks.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}
