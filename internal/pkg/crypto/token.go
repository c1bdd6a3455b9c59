// Package crypto provides cryptographic utilities for the Top Notes catalog.
// This includes token key generation and password hashing.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// TokenKeyLength is the length of an opaque token key in hex characters.
	TokenKeyLength = 40

	// tokenKeyBytes is the number of random bytes behind a token key.
	tokenKeyBytes = TokenKeyLength / 2
)

// GenerateTokenKey generates a random 40-character hex token key.
// Example: "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"
func GenerateTokenKey() (string, error) {
	raw := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
