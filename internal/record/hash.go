package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainRecord   = "assetsaving/record/v1"
	DomainProposal = "assetsaving/proposal/v1"
)

// HashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint is the content hash of a record's signed representation.
// Unlike ID it changes with every field.
func Fingerprint(r AssetSaving) (string, error) {
	signed, err := MarshalSigned(r)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return HashWithDomain(DomainRecord, signed), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(r AssetSaving) string {
	fp, err := Fingerprint(r)
	if err != nil {
		panic(err)
	}
	return fp
}
