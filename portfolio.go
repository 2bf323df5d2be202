package bondfolio

// CalculatedSecurity is a reporting-ready view of one open position.
type CalculatedSecurity struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	CompanyName   string       `json:"companyName,omitempty"`
	Type          SecurityType `json:"type"`
	Currency      Currency     `json:"currency"`
	Quantity      Quantity     `json:"quantity"`
	AveragePrice  Money        `json:"averagePrice"`
	CurrentValue  Money        `json:"currentValue"`
	TotalInvested Money        `json:"totalInvested"`
	Coupons       Money        `json:"coupons"`
	UnrealizedPnL Money        `json:"unrealizedPnL"`
	CouponRate    Percent      `json:"couponRate,omitempty"`
	MaturityDate  Date         `json:"maturityDate,omitzero"`

	// MonthlyIncome is informational only and feeds no other aggregate.
	// It is zero when no coupon rate could be resolved.
	MonthlyIncome Money `json:"monthlyIncome,omitempty"`
}

// CalculatedPortfolio is the engine's sole output: a fresh, self-contained
// snapshot recomputed from the full transaction list on every call.
type CalculatedPortfolio struct {
	Balances       Balances             `json:"balances"`   // net cash per currency
	TotalValue     Balances             `json:"totalValue"` // deposits - withdrawals + income
	Securities     []CalculatedSecurity `json:"securities"`
	TotalDeposited Money                `json:"totalDeposited"` // all deposits, in the reference currency
	Yield          Percent              `json:"yield"`
	LastUpdated    Date                 `json:"lastUpdated"`
}

// Calculate assembles the full portfolio snapshot from the ledger as of a
// date. It never mutates previous results: each call folds the transaction
// list from scratch.
func Calculate(ledger *Ledger, asOf Date) (*CalculatedPortfolio, error) {
	holdings, err := Aggregate(ledger)
	if err != nil {
		return nil, err
	}

	securities := make([]CalculatedSecurity, 0)
	holdings.Positions(func(p *Position) bool {
		if !p.Quantity.IsPositive() {
			return true
		}
		securities = append(securities, calculateSecurity(p))
		return true
	})

	deposits := make([]Money, 0, len(Currencies()))
	for _, c := range Currencies() {
		deposits = append(deposits, holdings.Deposits[c])
	}
	totalDeposited, err := SumAsReference(deposits...)
	if err != nil {
		return nil, err
	}
	yield, err := PortfolioYield(ledger, asOf)
	if err != nil {
		return nil, err
	}

	return &CalculatedPortfolio{
		Balances:       holdings.CashBalances(),
		TotalValue:     holdings.TotalValue(),
		Securities:     securities,
		TotalDeposited: totalDeposited,
		Yield:          yield,
		LastUpdated:    asOf,
	}, nil
}

func calculateSecurity(p *Position) CalculatedSecurity {
	avg := p.AveragePrice()
	// With no market pricing the position is carried at cost, so the
	// current value IS the cost basis. Recomputing it as avg*quantity
	// would reintroduce the division error of the average.
	current := p.TotalCost

	rate, maturity := resolveBondTerms(p)

	s := CalculatedSecurity{
		Symbol:        p.Symbol,
		Name:          p.Name,
		CompanyName:   p.CompanyName,
		Type:          p.Type,
		Currency:      p.Currency,
		Quantity:      p.Quantity,
		AveragePrice:  avg,
		CurrentValue:  current,
		TotalInvested: p.TotalCost,
		Coupons:       p.Coupons,
		UnrealizedPnL: current.Sub(p.TotalCost).Add(p.Coupons),
		CouponRate:    rate,
		MaturityDate:  maturity,
	}
	if !rate.IsZero() {
		s.MonthlyIncome = p.TotalCost.Mul(Q(float64(rate) / 100 / 12))
	}
	return s
}

// resolveBondTerms resolves the coupon rate and maturity date with a
// three-tier fallback: the structured fields seen on the position's
// transactions, then the originating buy's security record, then a pattern
// extracted from the free-text name. Historical and imported records often
// carry the terms only in the name, like `СОАО "ПП Полесье" 7.70%`.
func resolveBondTerms(p *Position) (Percent, Date) {
	rate := p.CouponRate
	maturity := p.MaturityDate

	if p.firstBuy != nil {
		if rate.IsZero() {
			rate = p.firstBuy.Security.CouponRate
		}
		if maturity.IsZero() {
			maturity = p.firstBuy.Security.MaturityDate
		}
	}
	if rate.IsZero() {
		if r, ok := ExtractCouponRate(p.Name); ok {
			rate = r
		}
	}
	if maturity.IsZero() {
		if d, ok := ExtractMaturityDate(p.Name); ok {
			maturity = d
		}
	}
	return rate, maturity
}
