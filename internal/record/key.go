package record

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// PublicKey is an Ed25519 public key used as a party identity.
// It is an array so that it is comparable and can be a map key.
type PublicKey [ed25519.PublicKeySize]byte

// NewPublicKey copies an ed25519.PublicKey into a PublicKey.
func NewPublicKey(pub ed25519.PublicKey) (PublicKey, error) {
	var k PublicKey
	if len(pub) != ed25519.PublicKeySize {
		return k, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	copy(k[:], pub)
	return k, nil
}

// ParsePublicKey decodes a hex encoded public key.
func ParsePublicKey(s string) (PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("public key %q: %w", s, err)
	}
	return NewPublicKey(raw)
}

// MustParsePublicKey is like ParsePublicKey but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParsePublicKey(s string) PublicKey {
	k, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the lower-case hex encoding.
func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// Short returns the first 8 hex characters, for logs.
func (k PublicKey) Short() string {
	return k.String()[:8]
}

// IsZero reports whether the key is unset.
func (k PublicKey) IsZero() bool {
	return k == PublicKey{}
}

// Ed25519 returns the key as an ed25519.PublicKey for signature checks.
func (k PublicKey) Ed25519() ed25519.PublicKey {
	out := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(out, k[:])
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
