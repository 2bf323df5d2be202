package bondfolio

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"sort"
)

// Ledger represents an append-only list of transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	name         string
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Name returns the ledger's name (its relative path under the portfolio dir).
func (l *Ledger) Name() string { return l.name }

// SetName sets the ledger's name.
func (l *Ledger) SetName(name string) { l.name = name }

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Validate checks a transaction for correctness and applies quick fixes where
// applicable (e.g., defaulting a zero date to today). It returns the
// validated (and potentially modified) transaction or an error detailing the
// validation failure.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	var err error
	switch v := tx.(type) {
	case Buy:
		tx, err = v.Validate(l)
	case Sell:
		tx, err = v.Validate(l)
	case Maturity:
		tx, err = v.Validate(l)
	case Coupon:
		tx, err = v.Validate(l)
	case Dividend:
		tx, err = v.Validate(l)
	case Deposit:
		tx, err = v.Validate(l)
	case Debit:
		tx, err = v.Validate(l)
	case Credit:
		tx, err = v.Validate(l)
	default:
		return tx, fmt.Errorf("unsupported transaction type for validation: %T %v", tx, tx)
	}
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return tx, nil
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// UpdateByID replaces the transaction carrying the given id. It reports
// whether a transaction was found and replaced.
func (l *Ledger) UpdateByID(id string, tx Transaction) bool {
	for i, existing := range l.transactions {
		if existing.ID() == id {
			l.transactions[i] = tx
			l.stableSort()
			return true
		}
	}
	return false
}

// DeleteByID removes the transaction carrying the given id. It reports
// whether a transaction was found and removed.
func (l *Ledger) DeleteByID(id string) bool {
	for i, existing := range l.transactions {
		if existing.ID() == id {
			l.transactions = slices.Delete(l.transactions, i, i+1)
			return true
		}
	}
	return false
}

// Get returns the transaction carrying the given id, or nil.
func (l *Ledger) Get(id string) Transaction {
	for _, tx := range l.transactions {
		if tx.ID() == id {
			return tx
		}
	}
	return nil
}

// Transactions returns an iterator that yields each transaction in
// chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// Position computes the number of units of a security held on a specific
// date, clamped at zero like the aggregation it previews.
func (l *Ledger) Position(symbol string, on Date) Quantity {
	var position Quantity
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		switch v := tx.(type) {
		case Buy:
			if v.Security.Symbol == symbol {
				position = position.Add(v.Security.Quantity)
			}
		case Sell:
			if v.Security.Symbol == symbol {
				position = position.Sub(v.Security.Quantity)
			}
		case Maturity:
			if v.Security.Symbol == symbol {
				position = position.Sub(v.Security.Quantity)
			}
		}
		if position.IsNegative() {
			position = Q(0)
		}
	}
	return position
}

// SecurityTransactions returns an iterator over transactions related to a
// specific security (Buy, Sell, Maturity, and symbol-tagged Coupon and
// Dividend payments).
func (l *Ledger) SecurityTransactions(symbol string) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			var s string
			switch v := tx.(type) {
			case Buy:
				s = v.Security.Symbol
			case Sell:
				s = v.Security.Symbol
			case Maturity:
				s = v.Security.Symbol
			case Coupon:
				s = v.Symbol
			case Dividend:
				s = v.Symbol
			default:
				continue
			}
			if s == symbol {
				if !yield(i, tx) {
					return
				}
			}
		}
	}
}

// AllSymbols iterates over all security symbols that appear in the ledger,
// in a stable sorted order.
func (l *Ledger) AllSymbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			switch v := tx.(type) {
			case Buy:
				visited[v.Security.Symbol] = struct{}{}
			case Sell:
				visited[v.Security.Symbol] = struct{}{}
			case Maturity:
				visited[v.Security.Symbol] = struct{}{}
			}
		}
		symbols := slices.Collect(maps.Keys(visited))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(symbol) {
				return
			}
		}
	}
}

// AllCurrencies iterates over all currencies that appear in the ledger's
// transactions, in a stable sorted order.
func (l *Ledger) AllCurrencies() iter.Seq[Currency] {
	return func(yield func(Currency) bool) {
		visited := make(map[Currency]struct{})
		for _, tx := range l.transactions {
			switch v := tx.(type) {
			case Buy:
				visited[v.Security.Price.Currency()] = struct{}{}
			case Sell:
				visited[v.Security.Price.Currency()] = struct{}{}
			case Maturity:
				visited[v.Security.Price.Currency()] = struct{}{}
			case Coupon:
				visited[v.Amount.Currency()] = struct{}{}
			case Dividend:
				visited[v.Amount.Currency()] = struct{}{}
			case Deposit:
				visited[v.Amount.Currency()] = struct{}{}
			case Debit:
				visited[v.Amount.Currency()] = struct{}{}
			case Credit:
				visited[v.Amount.Currency()] = struct{}{}
			}
		}
		currencies := slices.Collect(maps.Keys(visited))
		slices.Sort(currencies)
		for _, currency := range currencies {
			if !yield(currency) {
				return
			}
		}
	}
}

// warnOnOversell logs when a disposal exceeds the position held on that
// date. The transaction is still accepted: historical data may be
// incomplete, and the aggregator clamps the position at zero.
func warnOnOversell(ledger *Ledger, on Date, sec Security) {
	if ledger == nil {
		return
	}
	pos := ledger.Position(sec.Symbol, on)
	if pos.LessThan(sec.Quantity) {
		log.Printf("%v: disposing %s of %s exceeds position %s, clamping at zero", on, sec.Quantity, sec.Symbol, pos)
	}
}
