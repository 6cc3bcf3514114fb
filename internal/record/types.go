package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Party is a participant in a record.
// Two parties are the same party iff their keys are equal; Name is display
// data only.
type Party struct {
	Name string    `json:"name"`
	Key  PublicKey `json:"key"`
}

// Same reports whether p and o are the same identity.
func (p Party) Same(o Party) bool {
	return p.Key == o.Key
}

// String returns "name(key-prefix)" or just the key prefix.
func (p Party) String() string {
	if p.Name == "" {
		return p.Key.Short()
	}
	return fmt.Sprintf("%s(%s)", p.Name, p.Key.Short())
}

// AssetSaving is one immutable version of an asset-saving position held by
// a bank for a customer.
//
// ID is assigned once at issuance and survives every Update and Transfer.
type AssetSaving struct {
	Bank         Party     `json:"bank"`
	Customer     Party     `json:"customer"`
	StartDate    time.Time `json:"start_date"`
	Accumulation Amount    `json:"accumulation"`
	ID           uuid.UUID `json:"id"`
}

// Participants returns the parties with standing over the record.
// Always exactly bank then customer.
func (r AssetSaving) Participants() []Party {
	return []Party{r.Bank, r.Customer}
}

// Equal is structural equality over all fields.
// Start dates compare as instants, so location does not matter.
func (r AssetSaving) Equal(o AssetSaving) bool {
	return r.Bank == o.Bank &&
		r.Customer == o.Customer &&
		r.StartDate.Equal(o.StartDate) &&
		r.Accumulation == o.Accumulation &&
		r.ID == o.ID
}

// String is a short description for logs.
func (r AssetSaving) String() string {
	return fmt.Sprintf("AssetSaving{id=%s bank=%s customer=%s start=%s accumulation=%s}",
		r.ID, r.Bank, r.Customer, r.StartDate.UTC().Format(time.DateOnly), r.Accumulation)
}
