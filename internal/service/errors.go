// Package service provides business logic services for the Top Notes catalog.
package service

import "errors"

// Common service errors.
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotStaff           = errors.New("admin privileges required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")

	// Admin errors
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
	ErrInvalidAdminName   = errors.New("invalid admin name: must be 1-255 characters")

	// Settings errors
	ErrSettingKeyRequired   = errors.New("setting key is required")
	ErrSettingValueRequired = errors.New("setting value is required")

	// Catalog errors
	ErrPerfumeNotFound  = errors.New("perfume not found")
	ErrInvalidPerfumeID = errors.New("invalid perfume id")
	ErrValidation       = errors.New("validation failed")

	// Image upload errors
	ErrImageTooLarge        = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedImageType = errors.New("unsupported image type: png, jpeg or webp required")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
