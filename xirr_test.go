package bondfolio

import (
	"errors"
	"math"
	"testing"
)

func TestXIRR_OneYearReturn(t *testing.T) {
	// Invest 1000, get 1100 back exactly one year later: 10% annualized.
	flows := []CashFlow{
		{Date: day("2023-01-01"), Amount: -1000},
		{Date: day("2024-01-01"), Amount: 1100},
	}
	rate, err := XIRR(flows)
	if err != nil {
		t.Fatalf("XIRR: %v", err)
	}
	if math.Abs(rate-0.10) > 1e-4 {
		t.Errorf("XIRR = %f, want 0.10", rate)
	}
}

func TestXIRR_HalfYearDoubling(t *testing.T) {
	// Doubling in half a year annualizes to well over 100%.
	flows := []CashFlow{
		{Date: day("2024-01-01"), Amount: -1000},
		{Date: day("2024-07-01"), Amount: 2000},
	}
	rate, err := XIRR(flows)
	if err != nil {
		t.Fatalf("XIRR: %v", err)
	}
	// (1+r)^(182/365) = 2  =>  r = 2^(365/182) - 1
	want := math.Pow(2, 365.0/182.0) - 1
	if math.Abs(rate-want) > 1e-3 {
		t.Errorf("XIRR = %f, want %f", rate, want)
	}
}

func TestXIRR_MultipleFlows(t *testing.T) {
	// Whatever rate comes out, it must actually zero the NPV.
	flows := []CashFlow{
		{Date: day("2024-01-15"), Amount: -2000},
		{Date: day("2024-02-15"), Amount: 23.10},
		{Date: day("2024-02-20"), Amount: 25.00},
		{Date: day("2024-12-31"), Amount: 2100},
	}
	rate, err := XIRR(flows)
	if err != nil {
		t.Fatalf("XIRR: %v", err)
	}
	if npv := NPV(rate, flows); math.Abs(npv) > 1e-3 {
		t.Errorf("NPV at solved rate %f = %f, want ~0", rate, npv)
	}
}

func TestXIRR_Degenerate(t *testing.T) {
	testCases := []struct {
		name  string
		flows []CashFlow
	}{
		{"empty", nil},
		{"single flow", []CashFlow{{Date: day("2024-01-01"), Amount: -1000}}},
		{"all negative", []CashFlow{
			{Date: day("2024-01-01"), Amount: -1000},
			{Date: day("2024-06-01"), Amount: -500},
		}},
		{"all positive", []CashFlow{
			{Date: day("2024-01-01"), Amount: 1000},
			{Date: day("2024-06-01"), Amount: 500},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := XIRR(tc.flows); !errors.Is(err, ErrDegenerateCashFlows) {
				t.Errorf("XIRR = %v, want ErrDegenerateCashFlows", err)
			}
		})
	}
}

func TestNPV_ZeroRate(t *testing.T) {
	// At rate 0 the NPV is the plain sum of the flows.
	flows := []CashFlow{
		{Date: day("2024-01-01"), Amount: -1000},
		{Date: day("2024-07-01"), Amount: 400},
		{Date: day("2025-01-01"), Amount: 700},
	}
	if got := NPV(0, flows); math.Abs(got-100) > 1e-9 {
		t.Errorf("NPV(0) = %f, want 100", got)
	}
}

func TestPortfolioYield_NewPortfolioReportsZero(t *testing.T) {
	// A single deposit cannot carry a rate: the yield is reported as a
	// plain 0, not an error.
	ledger := NewLedger()
	ledger.Append(NewDeposit(day("2024-01-15"), "", USDm(2000)))

	yield, err := PortfolioYield(ledger, day("2024-06-15"))
	if err != nil {
		t.Fatalf("PortfolioYield: %v", err)
	}
	if !yield.IsZero() {
		t.Errorf("yield = %s, want 0", yield)
	}
}
