// Package finstore imports transaction history exported from the Finstore
// broker. The export is a JSON document whose shape has drifted over the
// years, so field access goes through JSONPath with tolerant fallbacks
// instead of a rigid decode struct.
package finstore

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/bondfolio/bondfolio"
)

// Import reads a Finstore JSON export and appends its operations to the
// ledger as native transactions. Operations with an unknown type are
// skipped with a warning rather than failing the whole import.
func Import(r io.Reader, ledger *bondfolio.Ledger) error {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("could not parse finstore export: %w", err)
	}

	ops, err := jsonpath.Get("$.operations", doc)
	if err != nil {
		// Older exports carry the list at the top level.
		if list, ok := doc.([]any); ok {
			ops = list
		} else {
			return fmt.Errorf("finstore export has no operations list: %w", err)
		}
	}
	list, ok := ops.([]any)
	if !ok {
		return fmt.Errorf("finstore operations is not a list")
	}

	for i, op := range list {
		tx, err := importOperation(op)
		if err != nil {
			return fmt.Errorf("finstore operation %d: %w", i, err)
		}
		if tx == nil {
			continue
		}
		ledger.Append(tx)
	}
	return nil
}

func importOperation(op any) (bondfolio.Transaction, error) {
	kind, err := getString(op, "$.type")
	if err != nil {
		return nil, err
	}
	rawDate, err := getString(op, "$.date")
	if err != nil {
		return nil, err
	}
	day, err := bondfolio.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", rawDate, err)
	}
	note, _ := getString(op, "$.description")

	switch kind {
	case "deposit":
		amount, err := cash(op)
		if err != nil {
			return nil, err
		}
		return bondfolio.NewDeposit(day, note, amount), nil
	case "debit", "withdrawal":
		amount, err := cash(op)
		if err != nil {
			return nil, err
		}
		return bondfolio.NewDebit(day, note, amount), nil
	case "credit":
		amount, err := cash(op)
		if err != nil {
			return nil, err
		}
		return bondfolio.NewCredit(day, note, amount), nil
	case "coupon":
		amount, err := cash(op)
		if err != nil {
			return nil, err
		}
		symbol, _ := getString(op, "$.security.symbol")
		return bondfolio.NewCoupon(day, note, amount, symbol), nil
	case "dividend":
		amount, err := cash(op)
		if err != nil {
			return nil, err
		}
		symbol, _ := getString(op, "$.security.symbol")
		return bondfolio.NewDividend(day, note, amount, symbol), nil
	case "buy":
		sec, err := security(op)
		if err != nil {
			return nil, err
		}
		fee := bondfolio.M(0, sec.Price.Currency())
		if f, err := getFloat(op, "$.fee"); err == nil {
			fee = bondfolio.M(f, sec.Price.Currency())
		}
		return bondfolio.NewBuy(day, note, sec, fee), nil
	case "sell":
		sec, err := security(op)
		if err != nil {
			return nil, err
		}
		return bondfolio.NewSell(day, note, sec), nil
	case "maturity":
		sec, err := security(op)
		if err != nil {
			return nil, err
		}
		return bondfolio.NewMaturity(day, note, sec), nil
	default:
		log.Printf("skipping unknown finstore operation type %q on %s", kind, day)
		return nil, nil
	}
}

func cash(op any) (bondfolio.Money, error) {
	amount, err := getFloat(op, "$.cash.amount")
	if err != nil {
		return bondfolio.Money{}, fmt.Errorf("operation has no cash amount: %w", err)
	}
	cur, err := getString(op, "$.cash.currency")
	if err != nil {
		return bondfolio.Money{}, fmt.Errorf("operation has no cash currency: %w", err)
	}
	m := bondfolio.M(amount, bondfolio.Currency(cur))
	if err := bondfolio.ValidateCurrency(m.Currency()); err != nil {
		return bondfolio.Money{}, err
	}
	return m, nil
}

func security(op any) (bondfolio.Security, error) {
	symbol, err := getString(op, "$.security.symbol")
	if err != nil {
		return bondfolio.Security{}, fmt.Errorf("operation has no security symbol: %w", err)
	}
	cur, err := getString(op, "$.security.currency")
	if err != nil {
		return bondfolio.Security{}, fmt.Errorf("security %s has no currency: %w", symbol, err)
	}
	qty, err := getFloat(op, "$.security.quantity")
	if err != nil {
		return bondfolio.Security{}, fmt.Errorf("security %s has no quantity: %w", symbol, err)
	}
	price, err := getFloat(op, "$.security.price")
	if err != nil {
		return bondfolio.Security{}, fmt.Errorf("security %s has no price: %w", symbol, err)
	}

	sec := bondfolio.Security{
		Symbol:   symbol,
		Quantity: bondfolio.Q(qty),
		Price:    bondfolio.M(price, bondfolio.Currency(cur)),
		Type:     bondfolio.Bond,
	}
	sec.Name, _ = getString(op, "$.security.name")
	sec.CompanyName, _ = getString(op, "$.security.companyName")
	if kind, err := getString(op, "$.security.type"); err == nil {
		if t, err := bondfolio.ParseSecurityType(kind); err == nil {
			sec.Type = t
		}
	}
	if rate, err := getFloat(op, "$.security.couponRate"); err == nil {
		sec.CouponRate = bondfolio.Percent(rate)
	}
	if raw, err := getString(op, "$.security.maturityDate"); err == nil {
		if d, err := bondfolio.ParseDate(raw); err == nil {
			sec.MaturityDate = d
		}
	}
	if nominal, err := getFloat(op, "$.security.nominalValue"); err == nil {
		sec.NominalValue = bondfolio.Q(nominal)
	}
	return sec, nil
}

// getString resolves path within doc and returns the value as a string.
// A single-element list unwraps to its element, because jsonpath is never
// clear about whether it returns a list of one answer or a single answer.
func getString(doc any, path string) (string, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", err
	}
	jval = unwrap(jval)
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string: %v", path, jval)
	}
	return s, nil
}

// getFloat resolves path within doc and returns the value as a float64,
// accepting the string-encoded numbers some exports produce.
func getFloat(doc any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, err
	}
	jval = unwrap(jval)
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		s := strings.ReplaceAll(strings.ReplaceAll(v, ",", "."), " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s is an invalid number string %q: %w", path, v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s is not a number: %v", path, jval)
	}
}

func unwrap(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval
}
