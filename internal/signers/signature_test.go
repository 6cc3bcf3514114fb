package signers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	payload := []byte(`{"transition":"issue"}`)
	alice := KeyFromSeed("alice")
	bank := KeyFromSeed("bank")

	sigs := []Signature{Sign(alice, payload), Sign(bank, payload)}
	keys, err := Verify(payload, sigs)
	require.NoError(t, err)
	assert.True(t, keys.Equal(NewKeySet(PublicKeyFromSeed("alice"), PublicKeyFromSeed("bank"))))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	payload := []byte("original")
	sig := Sign(KeyFromSeed("alice"), payload)

	_, err := Verify([]byte("tampered"), []Signature{sig})
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	payload := []byte("payload")
	sig := Sign(KeyFromSeed("alice"), payload)
	sig.Key = PublicKeyFromSeed("mallory")

	_, err := Verify(payload, []Signature{sig})
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyOneBadSignatureFailsAll(t *testing.T) {
	payload := []byte("payload")
	good := Sign(KeyFromSeed("alice"), payload)
	bad := Sign(KeyFromSeed("bank"), []byte("other"))

	_, err := Verify(payload, []Signature{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature 1")
}

func TestVerifyEmpty(t *testing.T) {
	keys, err := Verify([]byte("x"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, keys.Len())
}

func TestKeyFromSeedDeterministic(t *testing.T) {
	assert.Equal(t, KeyFromSeed("alice"), KeyFromSeed("alice"))
	assert.NotEqual(t, PublicKeyFromSeed("alice"), PublicKeyFromSeed("bob"))
}

func TestHexBytesText(t *testing.T) {
	h := HexBytes{0xde, 0xad}
	text, err := h.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dead", string(text))

	var back HexBytes
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, h, back)
	assert.Error(t, back.UnmarshalText([]byte("xyz")))
}
