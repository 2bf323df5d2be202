package bondfolio

import "sort"

// CashFlow is one dated flow from the investor's point of view, expressed in
// the reference currency. Outgoing capital (deposits) is negative, incoming
// capital (withdrawals, coupons, dividends) is positive.
//
// Amounts are float64 because cash flows exist only to feed the yield
// solver; ledger accounting never reads them back.
type CashFlow struct {
	Date   Date
	Amount float64
}

// CashFlows extracts the investor-level flow series from the ledger,
// converted to the reference currency and sorted by date:
//
//   - deposits count negative (capital leaves the investor's pocket),
//   - withdrawals, coupons and dividends count positive,
//   - buys, sells and maturities are internal conversions and produce
//     no flow of their own.
//
// A synthetic terminal flow dated asOf values the open positions at their
// aggregate cost basis, as if the portfolio were liquidated that day. It is
// omitted when nothing is held.
func CashFlows(ledger *Ledger, asOf Date) ([]CashFlow, error) {
	var flows []CashFlow
	for _, tx := range ledger.Transactions() {
		if tx.When().IsZero() {
			continue
		}
		switch v := tx.(type) {
		case Deposit:
			ref, err := ToReference(v.Amount)
			if err != nil {
				return nil, err
			}
			flows = append(flows, CashFlow{Date: v.When(), Amount: -ref.AsFloat()})
		case Debit:
			ref, err := ToReference(v.Amount)
			if err != nil {
				return nil, err
			}
			flows = append(flows, CashFlow{Date: v.When(), Amount: ref.AsFloat()})
		case Coupon:
			ref, err := ToReference(v.Amount)
			if err != nil {
				return nil, err
			}
			flows = append(flows, CashFlow{Date: v.When(), Amount: ref.AsFloat()})
		case Dividend:
			ref, err := ToReference(v.Amount)
			if err != nil {
				return nil, err
			}
			flows = append(flows, CashFlow{Date: v.When(), Amount: ref.AsFloat()})
		}
	}

	holdings, err := Aggregate(ledger)
	if err != nil {
		return nil, err
	}
	value, err := holdings.HoldingValue()
	if err != nil {
		return nil, err
	}
	if value.IsPositive() {
		flows = append(flows, CashFlow{Date: asOf, Amount: value.AsFloat()})
	}

	sort.SliceStable(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })
	return flows, nil
}
