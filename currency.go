package bondfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is one of the four supported currency codes.
type Currency string

const (
	BYN Currency = "BYN"
	USD Currency = "USD"
	EUR Currency = "EUR"
	RUB Currency = "RUB"
)

// ReferenceCurrency is the pivot currency through which all cross-currency
// conversions are composed.
const ReferenceCurrency = USD

// Currencies returns the closed set of supported currencies, in a stable order.
func Currencies() []Currency { return []Currency{BYN, USD, EUR, RUB} }

// ValidateCurrency checks that the code belongs to the supported set.
// An unknown code is a programming error, not data noise, so callers must
// fail fast rather than default.
func ValidateCurrency(c Currency) error {
	switch c {
	case BYN, USD, EUR, RUB:
		return nil
	default:
		return fmt.Errorf("unsupported currency code %q", string(c))
	}
}

// referenceRates holds one multiplicative rate per currency relative to the
// reference currency: 1 unit of the currency is worth rate units of USD.
// Rates are static configuration; adding a currency means extending this
// table and the Currency constants.
var referenceRates = map[Currency]decimal.Decimal{
	USD: decimal.NewFromInt(1),
	BYN: decimal.RequireFromString("0.31"),
	EUR: decimal.RequireFromString("1.05"),
	RUB: decimal.RequireFromString("0.011"),
}

// fromReferenceRates holds the reverse rates. They are quoted independently
// rather than computed as 1/rate, matching broker-published tables.
var fromReferenceRates = map[Currency]decimal.Decimal{
	USD: decimal.NewFromInt(1),
	BYN: decimal.RequireFromString("3.23"),
	EUR: decimal.RequireFromString("0.95"),
	RUB: decimal.RequireFromString("91.0"),
}

// ToReference converts an amount into the reference currency (USD).
func ToReference(m Money) (Money, error) {
	if err := ValidateCurrency(m.Currency()); err != nil {
		return Money{}, err
	}
	if m.Currency() == ReferenceCurrency {
		return m, nil
	}
	return M(m.value.Mul(referenceRates[m.Currency()]), ReferenceCurrency), nil
}

// FromReference converts an amount of the reference currency into the target currency.
func FromReference(m Money, to Currency) (Money, error) {
	if err := ValidateCurrency(to); err != nil {
		return Money{}, err
	}
	if m.Currency() != ReferenceCurrency {
		return Money{}, fmt.Errorf("amount is in %s, want %s", m.Currency(), ReferenceCurrency)
	}
	if to == ReferenceCurrency {
		return m, nil
	}
	return M(m.value.Mul(fromReferenceRates[to]), to), nil
}

// Convert converts an amount into the target currency, pivoting through the
// reference currency. Converting into the amount's own currency returns it
// unchanged, exactly: the identity case must not pick up floating noise from
// a rate round-trip.
func Convert(m Money, to Currency) (Money, error) {
	if err := ValidateCurrency(m.Currency()); err != nil {
		return Money{}, err
	}
	if err := ValidateCurrency(to); err != nil {
		return Money{}, err
	}
	if m.Currency() == to {
		return m, nil
	}
	ref, err := ToReference(m)
	if err != nil {
		return Money{}, err
	}
	return FromReference(ref, to)
}

// SumAsReference converts each amount into the reference currency and
// returns the total.
func SumAsReference(amounts ...Money) (Money, error) {
	total := M(0, ReferenceCurrency)
	for _, m := range amounts {
		ref, err := ToReference(m)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(ref)
	}
	return total, nil
}
