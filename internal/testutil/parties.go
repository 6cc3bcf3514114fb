package testutil

import (
	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
)

// Party returns a party named alias whose key is derived from alias.
// The same alias always yields the same key.
func Party(alias string) record.Party {
	return record.Party{Name: alias, Key: signers.PublicKeyFromSeed(alias)}
}

// Keys returns the derived keys of the aliases as a set.
func Keys(aliases ...string) signers.KeySet {
	keys := make([]record.PublicKey, len(aliases))
	for i, a := range aliases {
		keys[i] = signers.PublicKeyFromSeed(a)
	}
	return signers.NewKeySet(keys...)
}
