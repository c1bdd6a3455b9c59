package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/storage"
)

// ImageService handles product image uploads.
type ImageService struct {
	store   storage.ImageStore
	maxSize int64
	logger  zerolog.Logger
}

// NewImageService creates a new ImageService.
func NewImageService(store storage.ImageStore, maxSize int64, logger zerolog.Logger) *ImageService {
	return &ImageService{
		store:   store,
		maxSize: maxSize,
		logger:  logger.With().Str("service", "image").Logger(),
	}
}

// UploadImageInput contains an image upload.
type UploadImageInput struct {
	ContentType string
	Reader      io.Reader

	// Size is the declared content length; zero means unknown.
	Size int64
}

// Upload validates and stores an image, returning its public URL.
func (s *ImageService) Upload(ctx context.Context, input UploadImageInput) (string, error) {
	if _, ok := storage.ExtensionFor(input.ContentType); !ok {
		return "", ErrUnsupportedImageType
	}
	if s.maxSize > 0 && input.Size > s.maxSize {
		return "", ErrImageTooLarge
	}

	key, err := storage.NewImageKey(input.ContentType)
	if err != nil {
		return "", ErrUnsupportedImageType
	}

	reader := input.Reader
	if s.maxSize > 0 {
		// The declared size is client-controlled; never read past the cap.
		reader = io.LimitReader(reader, s.maxSize+1)
	}

	url, err := s.store.Store(ctx, key, input.ContentType, reader, input.Size)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to store image")
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("key", key).Str("url", url).Msg("image uploaded")
	return url, nil
}
