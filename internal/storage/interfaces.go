// Package storage defines the interface for product image storage backends.
// Backends persist uploaded images and return the public URL under which
// the storefront can reference them.
package storage

import (
	"context"
	"errors"
	"io"
)

// Storage errors.
var (
	// ErrImageNotFound indicates the requested image does not exist.
	ErrImageNotFound = errors.New("image not found")
)

// ImageStore defines the interface for image storage backends.
// Implementations include the local filesystem and S3-compatible stores.
type ImageStore interface {
	// Store persists image content under the given key and returns the
	// public URL of the stored image.
	Store(ctx context.Context, key, contentType string, reader io.Reader, size int64) (url string, err error)

	// Delete removes a stored image by key. Deleting a missing key
	// returns ErrImageNotFound.
	Delete(ctx context.Context, key string) error
}
