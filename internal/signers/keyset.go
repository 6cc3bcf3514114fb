package signers

import (
	"bytes"
	"slices"
	"strings"

	"github.com/roach88/assetsaving/internal/record"
)

// KeySet is an immutable set of public keys.
// The zero value is the empty set.
type KeySet struct {
	keys map[record.PublicKey]struct{}
}

// NewKeySet builds a set; duplicates collapse.
func NewKeySet(keys ...record.PublicKey) KeySet {
	m := make(map[record.PublicKey]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return KeySet{keys: m}
}

// Len returns the number of distinct keys.
func (s KeySet) Len() int {
	return len(s.keys)
}

// Contains reports membership.
func (s KeySet) Contains(k record.PublicKey) bool {
	_, ok := s.keys[k]
	return ok
}

// Equal is set equality. Supersets and subsets are not equal.
func (s KeySet) Equal(o KeySet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s.keys {
		if !o.Contains(k) {
			return false
		}
	}
	return true
}

// Union returns s ∪ o.
func (s KeySet) Union(o KeySet) KeySet {
	return NewKeySet(append(s.Sorted(), o.Sorted()...)...)
}

// Difference returns the keys in s that are not in o.
func (s KeySet) Difference(o KeySet) KeySet {
	var out []record.PublicKey
	for k := range s.keys {
		if !o.Contains(k) {
			out = append(out, k)
		}
	}
	return NewKeySet(out...)
}

// Sorted returns the keys in byte order for deterministic output.
func (s KeySet) Sorted() []record.PublicKey {
	out := make([]record.PublicKey, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b record.PublicKey) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}

// Strings returns the sorted keys as hex.
func (s KeySet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, k := range sorted {
		out[i] = k.String()
	}
	return out
}

// String renders the set as {k1,k2} using short key prefixes.
func (s KeySet) String() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, k := range sorted {
		parts[i] = k.Short()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Participants returns the identities with standing over a record:
// exactly {bank, customer}.
func Participants(r record.AssetSaving) KeySet {
	return NewKeySet(r.Bank.Key, r.Customer.Key)
}

// ParticipantsOf is the union of Participants over all records.
func ParticipantsOf(records ...record.AssetSaving) KeySet {
	keys := make([]record.PublicKey, 0, 2*len(records))
	for _, r := range records {
		keys = append(keys, r.Bank.Key, r.Customer.Key)
	}
	return NewKeySet(keys...)
}
