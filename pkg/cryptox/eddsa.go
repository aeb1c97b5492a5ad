package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// GenerateEd25519Key generates a new Ed25519 private key.
// Returns the private key in PEM format (PKCS8).
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}

	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: privateKeyBytes,
	}), nil
}

// LoadOrCreateEd25519Key reads a PEM key from path, generating and writing
// a new one (mode 0600) when the file does not exist. created reports
// whether a new key was written.
func LoadOrCreateEd25519Key(path string) (pemKey []byte, created bool, err error) {
	return loadOrCreate(path, GenerateEd25519Key)
}

// LoadOrCreateSecret reads a random secret from path, generating and
// writing a 256-bit one when the file does not exist.
func LoadOrCreateSecret(path string) (secret []byte, created bool, err error) {
	return loadOrCreate(path, func() ([]byte, error) {
		token, err := GenerateToken(TokenSize256)
		if err != nil {
			return nil, err
		}
		return []byte(token), nil
	})
}

func loadOrCreate(path string, generate func() ([]byte, error)) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("cryptox: read %s: %w", path, err)
	}

	data, err = generate()
	if err != nil {
		return nil, false, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, false, fmt.Errorf("cryptox: create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, false, fmt.Errorf("cryptox: write %s: %w", path, err)
	}

	return data, true, nil
}
