package bondfolio

import (
	"fmt"
	"log"
)

// Balances maps each supported currency to a running monetary total.
// All four currencies are always present.
type Balances map[Currency]Money

// NewBalances returns a Balances with every supported currency at zero.
func NewBalances() Balances {
	b := make(Balances, len(Currencies()))
	for _, c := range Currencies() {
		b[c] = M(0, c)
	}
	return b
}

// add accumulates an amount into its currency's bucket. The caller has
// already validated the currency.
func (b Balances) add(m Money) {
	b[m.Currency()] = b[m.Currency()].Add(m)
}

// Sub returns a fresh Balances holding b - o per currency.
func (b Balances) Sub(o Balances) Balances {
	r := NewBalances()
	for _, c := range Currencies() {
		r[c] = b[c].Sub(o[c])
	}
	return r
}

// Add returns a fresh Balances holding b + o per currency.
func (b Balances) Add(o Balances) Balances {
	r := NewBalances()
	for _, c := range Currencies() {
		r[c] = b[c].Add(o[c])
	}
	return r
}

// Position is the running aggregate for one security symbol. It is derived,
// never persisted: every aggregation starts from scratch.
type Position struct {
	Symbol      string
	Name        string
	CompanyName string
	Type        SecurityType
	Currency    Currency
	Quantity    Quantity
	TotalCost   Money // running cost basis in the security's native currency
	Coupons     Money // coupon/dividend income attributed to this symbol

	// Structured bond fields resolved from the position's transactions;
	// the assembler applies the free-text fallback when these stay empty.
	CouponRate   Percent
	MaturityDate Date

	firstBuy *Buy
}

// AveragePrice is totalCost/quantity. Only meaningful when quantity > 0;
// the assembler filters before dividing.
func (p *Position) AveragePrice() Money {
	return p.TotalCost.Div(p.Quantity)
}

// Holdings is the output of folding a transaction list: four per-currency
// cash ledgers and the per-security position states.
type Holdings struct {
	Deposits    Balances
	Withdrawals Balances
	Income      Balances // coupon and dividend income
	Purchases   Balances // asset-purchase outflow, fees included

	positions map[string]*Position
	order     []string // symbols in first-seen order
}

// CashBalances is the net cash per currency:
// deposits - withdrawals + income - purchases.
func (h *Holdings) CashBalances() Balances {
	return h.Deposits.Sub(h.Withdrawals).Add(h.Income).Sub(h.Purchases)
}

// TotalValue is the total capital still attributable to the investor per
// currency, whether sitting in cash or converted into securities:
// deposits - withdrawals + income. Purchases are deliberately excluded.
func (h *Holdings) TotalValue() Balances {
	return h.Deposits.Sub(h.Withdrawals).Add(h.Income)
}

// Position returns the position aggregated for a symbol, or nil.
func (h *Holdings) Position(symbol string) *Position {
	return h.positions[symbol]
}

// Positions yields every position in first-seen order, including those sold
// down to zero. Reporting filters on quantity > 0.
func (h *Holdings) Positions(yield func(*Position) bool) {
	for _, symbol := range h.order {
		if !yield(h.positions[symbol]) {
			return
		}
	}
}

// HoldingValue is the aggregate cost basis of open positions (quantity > 0),
// converted to the reference currency. The cash-flow extractor uses it as
// the hypothetical liquidation value.
func (h *Holdings) HoldingValue() (Money, error) {
	total := M(0, ReferenceCurrency)
	for _, symbol := range h.order {
		p := h.positions[symbol]
		if !p.Quantity.IsPositive() {
			continue
		}
		ref, err := ToReference(p.TotalCost)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(ref)
	}
	return total, nil
}

func (h *Holdings) position(sec Security) *Position {
	p, ok := h.positions[sec.Symbol]
	if !ok {
		p = &Position{
			Symbol:      sec.Symbol,
			Name:        sec.Name,
			CompanyName: sec.CompanyName,
			Type:        sec.Type,
			Currency:    sec.Price.Currency(),
			Quantity:    Q(0),
			TotalCost:   M(0, sec.Price.Currency()),
			Coupons:     M(0, sec.Price.Currency()),
		}
		h.positions[sec.Symbol] = p
		h.order = append(h.order, sec.Symbol)
	}
	if p.CouponRate.IsZero() && !sec.CouponRate.IsZero() {
		p.CouponRate = sec.CouponRate
	}
	if p.MaturityDate.IsZero() && !sec.MaturityDate.IsZero() {
		p.MaturityDate = sec.MaturityDate
	}
	return p
}

// Aggregate folds the ledger's transactions into holdings: cash ledgers and
// per-security positions with weighted-average cost accounting. It is a pure
// function of the transaction list; every call owns fresh aggregates.
//
// A record with a zero date is skipped with a warning (historical data may
// be imperfect); an unknown currency aborts the fold, because it signals a
// data-integrity problem, not noise.
func Aggregate(ledger *Ledger) (*Holdings, error) {
	h := &Holdings{
		Deposits:    NewBalances(),
		Withdrawals: NewBalances(),
		Income:      NewBalances(),
		Purchases:   NewBalances(),
		positions:   make(map[string]*Position),
	}

	// Symbol-tagged income is collected aside and attributed after the
	// fold, so a coupon recorded before its position's first buy still
	// counts toward that position.
	income := make(map[string]Money)

	for _, tx := range ledger.Transactions() {
		if tx.When().IsZero() {
			log.Printf("skipping %s transaction with no date (id %s)", tx.What(), tx.ID())
			continue
		}

		switch v := tx.(type) {
		case Deposit:
			if err := ValidateCurrency(v.Amount.Currency()); err != nil {
				return nil, fmt.Errorf("deposit on %s: %w", v.When(), err)
			}
			h.Deposits.add(v.Amount)

		case Debit:
			if err := ValidateCurrency(v.Amount.Currency()); err != nil {
				return nil, fmt.Errorf("debit on %s: %w", v.When(), err)
			}
			h.Withdrawals.add(v.Amount)

		case Coupon:
			if err := ValidateCurrency(v.Amount.Currency()); err != nil {
				return nil, fmt.Errorf("coupon on %s: %w", v.When(), err)
			}
			h.Income.add(v.Amount)
			if v.Symbol != "" {
				income[v.Symbol] = income[v.Symbol].Add(v.Amount)
			}

		case Dividend:
			if err := ValidateCurrency(v.Amount.Currency()); err != nil {
				return nil, fmt.Errorf("dividend on %s: %w", v.When(), err)
			}
			h.Income.add(v.Amount)
			if v.Symbol != "" {
				income[v.Symbol] = income[v.Symbol].Add(v.Amount)
			}

		case Credit:
			// Recorded for completeness; moves no ledger.

		case Buy:
			if err := ValidateCurrency(v.Security.Price.Currency()); err != nil {
				return nil, fmt.Errorf("buy on %s: %w", v.When(), err)
			}
			p := h.position(v.Security)
			if p.firstBuy == nil {
				buy := v
				p.firstBuy = &buy
			}
			cost := v.Cost() // quantity*price + fee
			p.Quantity = p.Quantity.Add(v.Security.Quantity)
			p.TotalCost = p.TotalCost.Add(cost)
			h.Purchases.add(cost)

		case Sell:
			if err := ValidateCurrency(v.Security.Price.Currency()); err != nil {
				return nil, fmt.Errorf("sell on %s: %w", v.When(), err)
			}
			h.position(v.Security).dispose(v.Security.Quantity)

		case Maturity:
			if err := ValidateCurrency(v.Security.Price.Currency()); err != nil {
				return nil, fmt.Errorf("maturity on %s: %w", v.When(), err)
			}
			h.position(v.Security).dispose(v.Security.Quantity)
		}
	}

	for symbol, amount := range income {
		if p, ok := h.positions[symbol]; ok {
			p.Coupons = p.Coupons.Add(amount)
		} else {
			log.Printf("income of %s references unknown symbol %s", amount, symbol)
		}
	}
	return h, nil
}

// dispose reduces the position by qty units at the average cost computed
// before the reduction. Quantity and cost basis are clamped at zero: a
// position cannot short itself from the system's perspective.
func (p *Position) dispose(qty Quantity) {
	if p.Quantity.IsPositive() {
		avgCost := p.TotalCost.Div(p.Quantity) // pre-reduction average
		p.TotalCost = p.TotalCost.Sub(avgCost.Mul(qty))
	}
	p.Quantity = p.Quantity.Sub(qty)
	if p.Quantity.IsNegative() {
		p.Quantity = Q(0)
	}
	if p.TotalCost.IsNegative() {
		p.TotalCost = M(0, p.Currency)
	}
}
