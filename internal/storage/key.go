package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Extensions for the accepted image content types.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ExtensionFor returns the file extension for an image content type,
// or false when the type is not accepted.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := imageExtensions[contentType]
	return ext, ok
}

// NewImageKey generates a storage key for an uploaded image. Keys are
// date-prefixed so backends shard by upload month rather than piling
// every object into one directory.
//
// Example: "perfumes/2026/08/0d0bbe47-8c2e-4bd2-a0b3-0f1d9c2f4a55.webp"
func NewImageKey(contentType string) (string, error) {
	ext, ok := ExtensionFor(contentType)
	if !ok {
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}

	now := time.Now().UTC()
	return fmt.Sprintf("perfumes/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), ext), nil
}
