package bondfolio

import (
	"math"
	"testing"
)

func TestCashFlows_SignsAndTerminalFlow(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewDeposit(day("2024-01-15"), "", USDm(2000)),
		NewBuy(day("2024-01-16"), "", polesye(6), USDm(5)),
		NewCoupon(day("2024-02-15"), "", USDm(23.10), "BY_POLESYE_01"),
		NewDebit(day("2024-03-01"), "", USDm(100)),
	)

	asOf := day("2024-06-15")
	flows, err := CashFlows(ledger, asOf)
	if err != nil {
		t.Fatalf("CashFlows: %v", err)
	}

	// deposit, coupon, debit, plus the terminal flow for the open position.
	if len(flows) != 4 {
		t.Fatalf("got %d flows, want 4: %v", len(flows), flows)
	}

	if flows[0].Amount != -2000 {
		t.Errorf("deposit flow = %f, want -2000", flows[0].Amount)
	}
	if math.Abs(flows[1].Amount-23.10) > 1e-9 {
		t.Errorf("coupon flow = %f, want 23.10", flows[1].Amount)
	}
	if flows[2].Amount != 100 {
		t.Errorf("debit flow = %f, want +100", flows[2].Amount)
	}

	terminal := flows[3]
	if terminal.Date != asOf {
		t.Errorf("terminal flow date = %s, want %s", terminal.Date, asOf)
	}
	// Hypothetical liquidation at cost basis: 6*100 + 5 fee.
	if math.Abs(terminal.Amount-605) > 1e-9 {
		t.Errorf("terminal flow = %f, want 605", terminal.Amount)
	}
}

func TestCashFlows_BuysProduceNoFlow(t *testing.T) {
	// A buy converts cash into a security: it is not an investor-level
	// flow. With the position later fully redeemed, only the deposit
	// remains.
	ledger := NewLedger()
	ledger.Append(
		NewDeposit(day("2024-01-15"), "", USDm(1000)),
		NewBuy(day("2024-01-16"), "", polesye(5), USDm(0)),
		NewMaturity(day("2024-03-01"), "", polesye(5)),
	)

	flows, err := CashFlows(ledger, day("2024-06-15"))
	if err != nil {
		t.Fatalf("CashFlows: %v", err)
	}
	if len(flows) != 1 {
		t.Fatalf("got %d flows, want only the deposit: %v", len(flows), flows)
	}
	if flows[0].Amount != -1000 {
		t.Errorf("flow = %f, want -1000", flows[0].Amount)
	}
}

func TestCashFlows_ConvertsToReference(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewDeposit(day("2024-01-15"), "", BYNm(100)))

	flows, err := CashFlows(ledger, day("2024-06-15"))
	if err != nil {
		t.Fatalf("CashFlows: %v", err)
	}
	if len(flows) != 1 {
		t.Fatalf("got %d flows, want 1", len(flows))
	}
	if math.Abs(flows[0].Amount-(-31)) > 1e-9 {
		t.Errorf("flow = %f, want -31 (100 BYN in USD)", flows[0].Amount)
	}
}

func TestCashFlows_SortedByDate(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewCoupon(day("2024-02-15"), "", USDm(10), ""),
		NewDeposit(day("2024-01-15"), "", USDm(500)),
	)
	flows, err := CashFlows(ledger, day("2024-06-15"))
	if err != nil {
		t.Fatalf("CashFlows: %v", err)
	}
	for i := 1; i < len(flows); i++ {
		if flows[i].Date.Before(flows[i-1].Date) {
			t.Errorf("flows out of order: %v", flows)
		}
	}
}
