package bondfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// SecurityType classifies a tradable security.
type SecurityType string

const (
	Bond  SecurityType = "bond"
	Stock SecurityType = "stock"
	ETF   SecurityType = "etf"
)

// ParseSecurityType parses a string into a SecurityType.
func ParseSecurityType(s string) (SecurityType, error) {
	switch SecurityType(s) {
	case Bond, Stock, ETF:
		return SecurityType(s), nil
	default:
		return "", fmt.Errorf("unknown security type: %q", s)
	}
}

// Security is the asset payload carried by asset-related transactions.
// Symbol is the stable identity key positions are aggregated under; the
// bond-specific fields are optional because historical and imported data
// may omit them (see CouponRateOf / MaturityDateOf for the fallbacks).
type Security struct {
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	CompanyName  string       `json:"companyName,omitempty"`
	Type         SecurityType `json:"type"`
	Quantity     Quantity     `json:"quantity"`
	Price        Money        // unit price, in the security's native currency
	NominalValue Quantity     `json:"nominalValue,omitempty"`
	CouponRate   Percent      `json:"couponRate,omitempty"`
	MaturityDate Date         `json:"maturityDate,omitempty"`
}

// Cost is the amount of cash the position costs, excluding fees.
func (s Security) Cost() Money { return s.Price.Mul(s.Quantity) }

// Validate checks the payload fields shared by all asset transactions.
func (s Security) Validate() error {
	if s.Symbol == "" {
		return errors.New("security symbol is missing")
	}
	if _, err := ParseSecurityType(string(s.Type)); err != nil {
		return err
	}
	if s.Quantity.IsNegative() || s.Quantity.IsZero() {
		return fmt.Errorf("security quantity must be positive, got %s", s.Quantity)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("security price must not be negative, got %s", s.Price)
	}
	return ValidateCurrency(s.Price.Currency())
}

// MarshalJSON implements the json.Marshaler interface for Security,
// flattening the price into amount/currency fields like the ledger format.
func (s Security) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", s.Symbol)
	w.Append("name", s.Name)
	w.Optional("companyName", s.CompanyName)
	w.Append("type", s.Type)
	w.Append("quantity", s.Quantity)
	w.Append("price", s.Price.value)
	w.Append("currency", s.Price.Currency())
	w.Optional("nominalValue", s.NominalValue)
	w.Optional("couponRate", s.CouponRate)
	if !s.MaturityDate.IsZero() {
		w.Append("maturityDate", s.MaturityDate)
	}
	return w.MarshalJSON()
}

// securityJSON is a specialized struct to decode the flattened form.
type securityJSON struct {
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	CompanyName  string       `json:"companyName"`
	Type         SecurityType `json:"type"`
	Quantity     Quantity     `json:"quantity"`
	Price        Quantity     `json:"price"`
	Currency     Currency     `json:"currency"`
	NominalValue Quantity     `json:"nominalValue"`
	CouponRate   Percent      `json:"couponRate"`
	MaturityDate Date         `json:"maturityDate"`
}

func (t securityJSON) security() Security {
	return Security{
		Symbol:       t.Symbol,
		Name:         t.Name,
		CompanyName:  t.CompanyName,
		Type:         t.Type,
		Quantity:     t.Quantity,
		Price:        M(t.Price.value, t.Currency),
		NominalValue: t.NominalValue,
		CouponRate:   t.CouponRate,
		MaturityDate: t.MaturityDate,
	}
}

func (s *Security) UnmarshalJSON(data []byte) error {
	var temp securityJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*s = temp.security()
	return nil
}

// couponRateRegex matches a trailing percentage in a display name,
// e.g. `СОАО "ПП Полесье" 7.70%`.
var couponRateRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// maturityDateRegex matches a DD.MM.YYYY date embedded in a display name.
var maturityDateRegex = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)

// ExtractCouponRate reads a coupon rate out of a free-text security name.
// It is a data-quality workaround for imported records that lack the
// structured field; it only ever feeds display fields, never the cost basis.
func ExtractCouponRate(name string) (Percent, bool) {
	match := couponRateRegex.FindStringSubmatch(name)
	if match == nil {
		return 0, false
	}
	rate, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return Percent(rate), true
}

// ExtractMaturityDate reads a maturity date out of a free-text security name.
func ExtractMaturityDate(name string) (Date, bool) {
	match := maturityDateRegex.FindStringSubmatch(name)
	if match == nil {
		return Date{}, false
	}
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	d, err := ParseDate(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
	if err != nil {
		return Date{}, false
	}
	return d, true
}
