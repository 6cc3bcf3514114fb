package wire

import (
	"fmt"
	"sort"

	"github.com/roach88/assetsaving/internal/record"
)

// Directory maps party aliases to parties.
type Directory struct {
	parties map[string]record.Party
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{parties: make(map[string]record.Party)}
}

// Add registers alias. Aliases are unique, and so are keys: two aliases for
// one key would make "bank differs" depend on spelling.
func (d *Directory) Add(alias string, p record.Party) error {
	if _, ok := d.parties[alias]; ok {
		return fmt.Errorf("party %q: duplicate alias", alias)
	}
	for other, q := range d.parties {
		if q.Same(p) {
			return fmt.Errorf("party %q: key already registered as %q", alias, other)
		}
	}
	d.parties[alias] = p
	return nil
}

// Party looks up an alias.
func (d *Directory) Party(alias string) (record.Party, error) {
	p, ok := d.parties[alias]
	if !ok {
		return record.Party{}, fmt.Errorf("unknown party %q", alias)
	}
	return p, nil
}

// Key resolves a signer reference: an alias, or a 64-digit hex key.
func (d *Directory) Key(ref string) (record.PublicKey, error) {
	if p, ok := d.parties[ref]; ok {
		return p.Key, nil
	}
	k, err := record.ParsePublicKey(ref)
	if err != nil {
		return record.PublicKey{}, fmt.Errorf("signer %q is neither a party alias nor a key", ref)
	}
	return k, nil
}

// Aliases returns the registered aliases in sorted order.
func (d *Directory) Aliases() []string {
	out := make([]string, 0, len(d.parties))
	for a := range d.parties {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// AliasOf returns the alias registered for key, if any.
func (d *Directory) AliasOf(key record.PublicKey) (string, bool) {
	for a, p := range d.parties {
		if p.Key == key {
			return a, true
		}
	}
	return "", false
}
