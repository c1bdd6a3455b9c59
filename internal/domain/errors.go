// Package domain contains the core business entities for the Top Notes catalog.
package domain

import (
	"errors"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ErrAdminNotFound indicates the requested admin does not exist.
	ErrAdminNotFound = errors.New("admin not found")

	// ErrAdminAlreadyExists indicates an admin with the same name exists.
	ErrAdminAlreadyExists = errors.New("admin already exists")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenNotFound indicates the bearer token is unknown.
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenAlreadyExists indicates the principal already holds a token.
	ErrTokenAlreadyExists = errors.New("token already exists")

	// ErrSettingNotFound indicates the requested setting does not exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrPerfumeNotFound indicates the requested perfume does not exist.
	ErrPerfumeNotFound = errors.New("perfume not found")
)
