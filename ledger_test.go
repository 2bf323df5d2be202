package bondfolio

import (
	"testing"
)

func TestLedger_Position(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2024-01-10"), "", polesye(6), USDm(5)),
		NewBuy(day("2024-01-20"), "", zubr(5), USDm(4)),
		NewSell(day("2024-02-01"), "", polesye(2)),
		NewDeposit(day("2024-02-05"), "", USDm(1000)), // ignored for positions
		NewMaturity(day("2024-03-01"), "", zubr(5)),
	)

	testCases := []struct {
		name   string
		symbol string
		on     string
		want   float64
	}{
		{"before any transaction", "BY_POLESYE_01", "2024-01-09", 0},
		{"on first buy", "BY_POLESYE_01", "2024-01-10", 6},
		{"after sell", "BY_POLESYE_01", "2024-02-02", 4},
		{"other symbol unaffected", "BY_ZUBR_AUTO_01", "2024-02-02", 5},
		{"after maturity", "BY_ZUBR_AUTO_01", "2024-03-02", 0},
		{"unknown symbol", "NOPE", "2024-03-02", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.Position(tc.symbol, day(tc.on))
			if !got.Equal(Q(tc.want)) {
				t.Errorf("Position(%s, %s) = %s, want %v", tc.symbol, tc.on, got, tc.want)
			}
		})
	}
}

func TestLedger_AppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewDeposit(day("2024-03-01"), "", USDm(3)))
	ledger.Append(NewDeposit(day("2024-01-01"), "", USDm(1)))
	ledger.Append(NewDeposit(day("2024-02-01"), "", USDm(2)))

	var prev Date
	for _, tx := range ledger.Transactions() {
		if tx.When().Before(prev) {
			t.Fatal("transactions out of chronological order")
		}
		prev = tx.When()
	}
	if ledger.OldestTransactionDate() != day("2024-01-01") {
		t.Errorf("oldest = %s, want 2024-01-01", ledger.OldestTransactionDate())
	}
	if ledger.NewestTransactionDate() != day("2024-03-01") {
		t.Errorf("newest = %s, want 2024-03-01", ledger.NewestTransactionDate())
	}
}

func TestLedger_CRUDByID(t *testing.T) {
	ledger := NewLedger()
	dep := NewDeposit(day("2024-01-10"), "", USDm(100))
	ledger.Append(dep, NewDeposit(day("2024-02-10"), "", USDm(200)))

	if got := ledger.Get(dep.ID()); got == nil || !got.Equal(dep) {
		t.Fatalf("Get(%s) = %v, want the deposit back", dep.ID(), got)
	}

	replacement := NewDeposit(day("2024-01-10"), "corrected", USDm(150))
	if !ledger.UpdateByID(dep.ID(), replacement) {
		t.Fatal("UpdateByID reported not found")
	}
	if got := ledger.Get(replacement.ID()); got == nil {
		t.Fatal("replacement not reachable by its id")
	}

	if !ledger.DeleteByID(replacement.ID()) {
		t.Fatal("DeleteByID reported not found")
	}
	if ledger.Len() != 1 {
		t.Errorf("len = %d after delete, want 1", ledger.Len())
	}
	if ledger.DeleteByID("no-such-id") {
		t.Error("DeleteByID of unknown id should report false")
	}
}

func TestLedger_AllSymbolsAndCurrencies(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2024-01-10"), "", zubr(5), USDm(0)),
		NewBuy(day("2024-01-11"), "", polesye(6), USDm(0)),
		NewDeposit(day("2024-01-12"), "", BYNm(10)),
	)

	var symbols []string
	for s := range ledger.AllSymbols() {
		symbols = append(symbols, s)
	}
	if len(symbols) != 2 || symbols[0] != "BY_POLESYE_01" || symbols[1] != "BY_ZUBR_AUTO_01" {
		t.Errorf("AllSymbols = %v, want sorted pair", symbols)
	}

	seen := map[Currency]bool{}
	for c := range ledger.AllCurrencies() {
		seen[c] = true
	}
	if !seen[USD] || !seen[BYN] {
		t.Errorf("AllCurrencies = %v, want USD and BYN", seen)
	}
}

func TestLedger_SecurityTransactions(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(day("2024-01-10"), "", polesye(6), USDm(0)),
		NewBuy(day("2024-01-11"), "", zubr(5), USDm(0)),
		NewCoupon(day("2024-02-15"), "", USDm(23.10), "BY_POLESYE_01"),
		NewCoupon(day("2024-02-20"), "", USDm(25), "BY_ZUBR_AUTO_01"),
		NewDeposit(day("2024-03-01"), "", USDm(100)),
	)

	var count int
	for _, tx := range ledger.SecurityTransactions("BY_POLESYE_01") {
		count++
		switch v := tx.(type) {
		case Buy:
			if v.Security.Symbol != "BY_POLESYE_01" {
				t.Errorf("unexpected buy for %s", v.Security.Symbol)
			}
		case Coupon:
			if v.Symbol != "BY_POLESYE_01" {
				t.Errorf("unexpected coupon for %s", v.Symbol)
			}
		default:
			t.Errorf("unexpected transaction type %T", tx)
		}
	}
	if count != 2 {
		t.Errorf("got %d transactions for BY_POLESYE_01, want 2", count)
	}
}
