package record

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	// ErrUnsupportedCurrency is returned when a currency code is not on the
	// allow-list or is not an ISO 4217 code.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrNegativeQuantity is returned for amounts below zero.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// Amount is a quantity of a currency in minor units (cents, pence, ...).
type Amount struct {
	Currency string `json:"currency"`
	Quantity int64  `json:"quantity"`
}

// NewAmount validates the currency code against ISO 4217 and rejects
// negative quantities.
func NewAmount(code string, quantity int64) (Amount, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	if quantity < 0 {
		return Amount{}, fmt.Errorf("%w: %d", ErrNegativeQuantity, quantity)
	}
	return Amount{Currency: unit.String(), Quantity: quantity}, nil
}

// Scale returns the number of minor-unit digits for the currency.
// Unknown codes are treated as scale 0.
func (a Amount) Scale() int {
	unit, err := currency.ParseISO(a.Currency)
	if err != nil {
		return 0
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.Quantity, -int32(a.Scale()))
}

// String formats the amount in major units, e.g. "1.50 USD".
func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Decimal().StringFixed(int32(a.Scale())), a.Currency)
}

// Currencies is an allow-list of currency codes accepted at issuance.
type Currencies []string

// DefaultCurrencies are the codes the issuing flow has always offered.
var DefaultCurrencies = Currencies{"USD", "GBP", "CHF"}

// Allows reports whether code is on the list.
func (c Currencies) Allows(code string) bool {
	return slices.Contains(c, code)
}

// Amount builds an Amount after checking the allow-list.
func (c Currencies) Amount(code string, quantity int64) (Amount, error) {
	if !c.Allows(code) {
		return Amount{}, fmt.Errorf("%w: %q (allowed: %v)", ErrUnsupportedCurrency, code, []string(c))
	}
	return NewAmount(code, quantity)
}
