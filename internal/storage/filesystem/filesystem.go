// Package filesystem provides a local-disk image store.
// Suitable for single-node deployments; the server must serve the data
// directory under the configured base URL.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/storage"
)

// Store implements storage.ImageStore on the local filesystem.
type Store struct {
	dataDir string
	baseURL string
	logger  zerolog.Logger
}

// NewStore creates a filesystem image store rooted at the configured
// data directory.
func NewStore(cfg config.StorageConfig, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image data dir: %w", err)
	}

	return &Store{
		dataDir: cfg.DataDir,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger.With().Str("component", "image-store").Logger(),
	}, nil
}

// Store persists the image under the data directory and returns its URL.
func (s *Store) Store(ctx context.Context, key, contentType string, reader io.Reader, size int64) (string, error) {
	path := filepath.Join(s.dataDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image dir: %w", err)
	}

	// Write to a temp file first so a failed upload never leaves a
	// half-written image at the final path.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, reader)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if size > 0 && written != size {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("short image write: got %d bytes, expected %d", written, size)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize image: %w", err)
	}

	s.logger.Debug().Str("key", key).Int64("size", written).Msg("image stored")
	return s.baseURL + "/" + key, nil
}

// Delete removes a stored image.
func (s *Store) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.dataDir, filepath.FromSlash(key))

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return storage.ErrImageNotFound
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// Ensure Store implements storage.ImageStore.
var _ storage.ImageStore = (*Store)(nil)
