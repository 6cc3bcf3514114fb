package record

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces record identifiers at issuance.
type IDGenerator interface {
	NewID() uuid.UUID
}

// RandomIDs generates random (version 4) UUIDs.
//
// Thread-safety: RandomIDs is stateless and safe for concurrent use.
type RandomIDs struct{}

// NewID returns a fresh random UUID.
func (RandomIDs) NewID() uuid.UUID {
	return uuid.New()
}

// Issue creates the first version of a position with a fresh ID.
// A nil generator falls back to RandomIDs.
func Issue(bank, customer Party, startDate time.Time, accumulation Amount, ids IDGenerator) AssetSaving {
	if ids == nil {
		ids = RandomIDs{}
	}
	return AssetSaving{
		Bank:         bank,
		Customer:     customer,
		StartDate:    startDate,
		Accumulation: accumulation,
		ID:           ids.NewID(),
	}
}

// WithAccumulation derives the Update successor: same position, new
// balance in the same currency.
func (r AssetSaving) WithAccumulation(quantity int64) AssetSaving {
	next := r
	next.Accumulation = Amount{Currency: r.Accumulation.Currency, Quantity: quantity}
	return next
}

// WithCustody derives the Transfer successor: new bank, customer, start
// date and balance under the same ID.
func (r AssetSaving) WithCustody(bank, customer Party, startDate time.Time, quantity int64) AssetSaving {
	next := r
	next.Bank = bank
	next.Customer = customer
	next.StartDate = startDate
	next.Accumulation = Amount{Currency: r.Accumulation.Currency, Quantity: quantity}
	return next
}
