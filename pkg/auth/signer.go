// Package auth provides the ed25519 signing primitives used for both
// off-chain message authentication and REST request signing.
package auth

import (
	"crypto/ed25519"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

const secretKeyPrefix = "ed25519:"

// ErrSigningUnavailable indicates the signing key material is missing or
// unusable. All malformed key failures carry it.
var ErrSigningUnavailable = errors.New("signing key unavailable")

// Signer produces detached ed25519 signatures over arbitrary byte strings.
// Implementations must sign exactly the bytes they are given.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	Public() ed25519.PublicKey
}

// KeypairSigner signs with an in-memory ed25519 keypair.
type KeypairSigner struct {
	priv ed25519.PrivateKey
}

// NewKeypairSigner wraps an existing private key.
func NewKeypairSigner(priv ed25519.PrivateKey) (*KeypairSigner, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, ErrSigningUnavailable
	}

	return &KeypairSigner{priv: priv}, nil
}

// NewKeypairSignerFromSecret parses an Orderly secret key string and returns
// a signer for it. The string is either a raw base58 encoded 32 byte seed,
// or the same seed with an "ed25519:" prefix.
func NewKeypairSignerFromSecret(secret string) (*KeypairSigner, error) {
	seed, err := ParseSecretKey(secret)
	if err != nil {
		return nil, err
	}

	return &KeypairSigner{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

func (s *KeypairSigner) Sign(message []byte) ([]byte, error) {
	if len(s.priv) != ed25519.PrivateKeySize {
		return nil, ErrSigningUnavailable
	}

	return ed25519.Sign(s.priv, message), nil
}

func (s *KeypairSigner) Public() ed25519.PublicKey {
	return s.priv.Public().(ed25519.PublicKey)
}

// ParseSecretKey decodes an Orderly secret key string into a 32 byte seed.
func ParseSecretKey(secret string) ([]byte, error) {
	encoded := strings.TrimPrefix(secret, secretKeyPrefix)

	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrapf(ErrSigningUnavailable, "failed to decode base58 secret key: %v", err)
	}

	if len(decoded) != ed25519.SeedSize {
		return nil, errors.Wrapf(ErrSigningUnavailable, "invalid secret key length: expected %d bytes, got %d", ed25519.SeedSize, len(decoded))
	}

	return decoded, nil
}
