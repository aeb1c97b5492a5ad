package app

import (
	"fmt"
	"log/slog"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/cryptox"
	"github.com/zancompute/zanconfig/pkg/jwtx"
)

// signingKeyID is the kid stamped on session cookies.
const signingKeyID = "session-1"

// Keys holds the key material the console needs at runtime.
type Keys struct {
	Signer   *jwtx.EdDSASigner
	Verifier *jwtx.EdDSAVerifier
	Sealer   *cryptox.Sealer
	CSRFKey  []byte
}

// InitKeys loads the console secret and the session signing key, creating
// either file when it is missing, and derives the per-purpose keys from
// the secret.
//
// Both files must survive restarts: a new secret makes every stored backend
// token unreadable and every CSRF token invalid, a new signing key logs
// every operator out.
func InitKeys(cfg Config, logger *slog.Logger) (*Keys, error) {
	secret, created, err := cryptox.LoadOrCreateSecret(cfg.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load console secret: %w", err)
	}
	if created {
		logger.Warn("generated new console secret", "path", cfg.SecretFile)
	}

	sealKey, err := cryptox.DeriveKey(secret, cryptox.PurposeTokenSealing, 32)
	if err != nil {
		return nil, err
	}
	sealer, err := cryptox.NewSealer(sealKey)
	if err != nil {
		return nil, err
	}

	csrfKey, err := cryptox.DeriveKey(secret, cryptox.PurposeCSRF, 32)
	if err != nil {
		return nil, err
	}

	pemKey, created, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load session signing key: %w", err)
	}
	if created {
		logger.Warn("generated new session signing key", "path", cfg.SigningKeyFile)
	}

	signer, err := jwtx.NewSignerEdDSA(signingKeyID, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, err
	}

	logger.Info("session keys ready", "kid", signer.KID(), "alg", signer.Alg())

	return &Keys{
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, session.Issuer, []string{session.Issuer}),
		Sealer:   sealer,
		CSRFKey:  csrfKey,
	}, nil
}
