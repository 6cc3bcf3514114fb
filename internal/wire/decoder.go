package wire

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
)

// Decoder turns documents into proposals.
type Decoder struct {
	// Currencies is the allow-list for newly issued positions. Records
	// already on the ledger may carry any ISO 4217 code.
	// Default: record.DefaultCurrencies.
	Currencies record.Currencies

	// IDs mints ids for produced records that have none.
	// Default: record.RandomIDs.
	IDs record.IDGenerator

	// Now supplies the evaluation time when a document has none.
	// Default: time.Now.
	Now func() time.Time

	// DeriveKeys gives parties without a key the key derived from their
	// alias (signers.PublicKeyFromSeed). For fixtures and demos only.
	DeriveKeys bool
}

func (d *Decoder) currencies() record.Currencies {
	if d.Currencies == nil {
		return record.DefaultCurrencies
	}
	return d.Currencies
}

func (d *Decoder) ids() record.IDGenerator {
	if d.IDs == nil {
		return record.RandomIDs{}
	}
	return d.IDs
}

func (d *Decoder) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}

// Proposal resolves doc into a proposal ready for the validator.
//
// When doc carries signatures they are verified against the proposal's
// signing payload; any invalid signature fails decoding with
// signers.ErrBadSignature.
func (d *Decoder) Proposal(doc *Document) (contract.Proposal, error) {
	var p contract.Proposal

	if doc.Transition != "" {
		t, err := contract.ParseTransition(doc.Transition)
		if err != nil {
			return p, err
		}
		p.Transition = t
	}

	p.EvalTime = doc.EvalTime.Time
	if p.EvalTime.IsZero() {
		p.EvalTime = d.now()
	}

	dir, err := d.Directory(doc.Parties)
	if err != nil {
		return p, err
	}

	for i, rd := range doc.Consumed {
		r, err := d.Record(dir, rd)
		if err != nil {
			return p, fmt.Errorf("consumed[%d]: %w", i, err)
		}
		p.Consumed = append(p.Consumed, r)
	}
	for i, rd := range doc.Produced {
		r, err := d.Record(dir, rd)
		if err != nil {
			return p, fmt.Errorf("produced[%d]: %w", i, err)
		}
		p.Produced = append(p.Produced, r)
	}
	if err := d.CheckIssuance(p); err != nil {
		return p, err
	}

	if len(doc.Signatures) > 0 {
		p.Signers, err = d.verifySignatures(dir, p, doc.Signatures)
		if err != nil {
			return p, err
		}
		return p, nil
	}

	keys := make([]record.PublicKey, 0, len(doc.Signers))
	for i, ref := range doc.Signers {
		k, err := dir.Key(ref)
		if err != nil {
			return p, fmt.Errorf("signers[%d]: %w", i, err)
		}
		keys = append(keys, k)
	}
	p.Signers = signers.NewKeySet(keys...)
	return p, nil
}

func (d *Decoder) verifySignatures(dir *Directory, p contract.Proposal, docs []SignatureDoc) (signers.KeySet, error) {
	payload, err := p.SigningPayload()
	if err != nil {
		return signers.KeySet{}, fmt.Errorf("signing payload: %w", err)
	}
	sigs := make([]signers.Signature, len(docs))
	for i, sd := range docs {
		k, err := dir.Key(sd.Key)
		if err != nil {
			return signers.KeySet{}, fmt.Errorf("signatures[%d]: %w", i, err)
		}
		sigs[i] = signers.Signature{Key: k, Sig: sd.Sig}
	}
	return signers.Verify(payload, sigs)
}

// Directory builds the alias table for a document's parties.
// A party's name defaults to its alias.
func (d *Decoder) Directory(parties map[string]PartyDoc) (*Directory, error) {
	dir := NewDirectory()

	aliases := make([]string, 0, len(parties))
	for alias := range parties {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		pd := parties[alias]
		name := pd.Name
		if name == "" {
			name = alias
		}

		var key record.PublicKey
		switch {
		case pd.Key != "":
			k, err := record.ParsePublicKey(pd.Key)
			if err != nil {
				return nil, fmt.Errorf("party %q: %w", alias, err)
			}
			key = k
		case d.DeriveKeys:
			key = signers.PublicKeyFromSeed(alias)
		default:
			return nil, fmt.Errorf("party %q: key is required", alias)
		}

		if err := dir.Add(alias, record.Party{Name: name, Key: key}); err != nil {
			return nil, err
		}
	}
	return dir, nil
}

// CheckIssuance refuses an issue whose produced records use a currency
// outside the allow-list. Other transitions are not checked, so a position
// issued under an older allow-list can still be updated or cancelled.
func (d *Decoder) CheckIssuance(p contract.Proposal) error {
	if _, ok := p.Transition.(contract.Issue); !ok {
		return nil
	}
	for i, r := range p.Produced {
		a := r.Accumulation
		if _, err := d.currencies().Amount(a.Currency, a.Quantity); err != nil {
			return fmt.Errorf("produced[%d]: accumulation: %w", i, err)
		}
	}
	return nil
}

// Record resolves one record document. The amount must be a valid ISO 4217
// amount; the allow-list is applied by CheckIssuance.
func (d *Decoder) Record(dir *Directory, rd RecordDoc) (record.AssetSaving, error) {
	bank, err := dir.Party(rd.Bank)
	if err != nil {
		return record.AssetSaving{}, fmt.Errorf("bank: %w", err)
	}
	customer, err := dir.Party(rd.Customer)
	if err != nil {
		return record.AssetSaving{}, fmt.Errorf("customer: %w", err)
	}
	if rd.StartDate.IsZero() {
		return record.AssetSaving{}, fmt.Errorf("start_date is required")
	}
	amount, err := record.NewAmount(rd.Accumulation.Currency, rd.Accumulation.Quantity)
	if err != nil {
		return record.AssetSaving{}, fmt.Errorf("accumulation: %w", err)
	}

	if rd.ID == "" {
		return record.Issue(bank, customer, rd.StartDate.Time, amount, d.ids()), nil
	}
	id, err := uuid.Parse(rd.ID)
	if err != nil {
		return record.AssetSaving{}, fmt.Errorf("id: %w", err)
	}
	return record.AssetSaving{
		Bank:         bank,
		Customer:     customer,
		StartDate:    rd.StartDate.Time,
		Accumulation: amount,
		ID:           id,
	}, nil
}
