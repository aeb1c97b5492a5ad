package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Purpose labels for keys derived from the console secret.
const (
	PurposeTokenSealing = "zanconfig/session-token-sealing"
	PurposeCSRF         = "zanconfig/csrf"
)

// DeriveKey expands secret into a size-byte key bound to purpose using
// HKDF-SHA256. Distinct purposes yield independent keys.
func DeriveKey(secret []byte, purpose string, size int) ([]byte, error) {
	if len(secret) < 16 {
		return nil, errors.New("cryptox: secret must be at least 16 bytes")
	}

	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("cryptox: derive %s: %w", purpose, err)
	}

	return key, nil
}
