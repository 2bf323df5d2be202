package bondfolio

import (
	"errors"
	"math"
)

// Solver tuning, matching the usual XIRR conventions: an actual/365 day
// count, a 10% initial guess, and a 1e-6 tolerance on both the residual
// NPV and the step size.
const (
	xirrGuess     = 0.10
	xirrTolerance = 1e-6
	xirrMaxIter   = 100
	daysPerYear   = 365.0
)

var (
	// ErrDegenerateCashFlows reports a series too short to carry a rate.
	ErrDegenerateCashFlows = errors.New("xirr: need at least two cash flows")
	// ErrZeroDerivative reports a flat NPV curve at the current iterate.
	ErrZeroDerivative = errors.New("xirr: derivative vanished, cannot continue")
	// ErrNoConvergence reports iteration exhaustion without a root.
	ErrNoConvergence = errors.New("xirr: no convergence")
)

// NPV discounts the series at annual rate r, counting time in actual days
// from the first flow: npv = Σ cf / (1+r)^(days/365).
func NPV(rate float64, flows []CashFlow) float64 {
	if len(flows) == 0 {
		return 0
	}
	t0 := flows[0].Date
	var npv float64
	for _, cf := range flows {
		years := float64(t0.DaysUntil(cf.Date)) / daysPerYear
		npv += cf.Amount / math.Pow(1+rate, years)
	}
	return npv
}

// npvDerivative is dNPV/dr at rate r, used as the Newton step denominator.
func npvDerivative(rate float64, flows []CashFlow) float64 {
	t0 := flows[0].Date
	var d float64
	for _, cf := range flows {
		years := float64(t0.DaysUntil(cf.Date)) / daysPerYear
		if years == 0 {
			continue
		}
		d -= years * cf.Amount / math.Pow(1+rate, years+1)
	}
	return d
}

// XIRR solves for the annualized internal rate of return of an irregular
// cash-flow series using Newton-Raphson. The series must hold at least two
// flows with at least one sign change; callers build it with CashFlows.
//
// The returned rate is a fraction (0.10 means 10% per year).
func XIRR(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, ErrDegenerateCashFlows
	}
	var hasNegative, hasPositive bool
	for _, cf := range flows {
		if cf.Amount < 0 {
			hasNegative = true
		}
		if cf.Amount > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return 0, ErrDegenerateCashFlows
	}

	rate := xirrGuess
	for i := 0; i < xirrMaxIter; i++ {
		npv := NPV(rate, flows)
		if math.Abs(npv) < xirrTolerance {
			return rate, nil
		}
		derivative := npvDerivative(rate, flows)
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return 0, ErrZeroDerivative
		}
		next := rate - npv/derivative
		if math.Abs(next-rate) < xirrTolerance {
			return next, nil
		}
		rate = next
	}
	return 0, ErrNoConvergence
}

// PortfolioYield computes the annualized yield of the whole ledger as of a
// date, in percent. Portfolios whose flow series cannot carry a rate (brand
// new, or pure cash) report a plain 0 rather than an error: a zero yield is
// the honest answer for them, and reporting keeps working.
func PortfolioYield(ledger *Ledger, asOf Date) (Percent, error) {
	flows, err := CashFlows(ledger, asOf)
	if err != nil {
		return 0, err
	}
	rate, err := XIRR(flows)
	if err != nil {
		return 0, nil
	}
	return Percent(rate * 100), nil
}
