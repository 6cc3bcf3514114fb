package signers

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/roach88/assetsaving/internal/record"
)

// ErrBadSignature is returned when any signature fails to verify.
var ErrBadSignature = errors.New("invalid signature")

// Signature is one party's Ed25519 signature over a signing payload.
type Signature struct {
	Key record.PublicKey `json:"key" yaml:"key"`
	Sig HexBytes         `json:"sig" yaml:"sig"`
}

// HexBytes is a byte slice with a hex text form.
type HexBytes []byte

// MarshalText implements encoding.TextMarshaler.
func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexBytes) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("hex bytes: %w", err)
	}
	*h = raw
	return nil
}

// Sign signs payload with priv.
func Sign(priv ed25519.PrivateKey, payload []byte) Signature {
	pub, _ := record.NewPublicKey(priv.Public().(ed25519.PublicKey))
	return Signature{Key: pub, Sig: ed25519.Sign(priv, payload)}
}

// Verify checks every signature against payload and returns the set of
// signing keys. A single bad signature fails the whole set: a proposal
// carrying a forged signature is not partially trusted.
func Verify(payload []byte, sigs []Signature) (KeySet, error) {
	keys := make([]record.PublicKey, 0, len(sigs))
	for i, s := range sigs {
		if !ed25519.Verify(s.Key.Ed25519(), payload, s.Sig) {
			return KeySet{}, fmt.Errorf("%w: signature %d by %s", ErrBadSignature, i, s.Key.Short())
		}
		keys = append(keys, s.Key)
	}
	return NewKeySet(keys...), nil
}

// KeyFromSeed derives a deterministic key pair from a text seed.
// Intended for test fixtures and demo documents, not for production keys.
func KeyFromSeed(seed string) ed25519.PrivateKey {
	sum := sha256.Sum256([]byte(seed))
	return ed25519.NewKeyFromSeed(sum[:])
}

// PublicKeyFromSeed is the public half of KeyFromSeed.
func PublicKeyFromSeed(seed string) record.PublicKey {
	pub, _ := record.NewPublicKey(KeyFromSeed(seed).Public().(ed25519.PublicKey))
	return pub
}
