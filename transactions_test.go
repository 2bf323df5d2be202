package bondfolio

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	original := DemoLedger()
	original.Append(
		NewSell(day("2024-03-01"), "trim", polesye(2)),
		NewMaturity(day("2024-04-01"), "", zubr(5)),
		NewDebit(day("2024-04-02"), "", USDm(100)),
		NewCredit(day("2024-04-03"), "broker bonus", USDm(5)),
		NewDividend(day("2024-04-04"), "", BYNm(12.50), ""),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, original); err != nil {
		t.Fatalf("EncodeLedger: %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if decoded.Len() != original.Len() {
		t.Fatalf("decoded %d transactions, want %d", decoded.Len(), original.Len())
	}

	for i, want := range original.Transactions() {
		got := decoded.Get(want.ID())
		if got == nil {
			t.Fatalf("transaction %d (%s) lost its id %s", i, want.What(), want.ID())
		}
		if !want.Equal(got) {
			t.Errorf("transaction %d differs after round trip:\nwant %#v\ngot  %#v", i, want, got)
		}
	}
}

func TestDecodeLedger_UnknownTypeFails(t *testing.T) {
	line := `{"id":"x","type":"short","date":"2024-01-10"}` + "\n"
	if _, err := DecodeLedger(strings.NewReader(line)); err == nil {
		t.Error("decoding an unknown transaction type should fail")
	}
}

func TestDecodeLedger_MalformedDateFails(t *testing.T) {
	line := `{"id":"x","type":"deposit","date":"not-a-date","cash":{"amount":10,"currency":"USD"}}` + "\n"
	if _, err := DecodeLedger(strings.NewReader(line)); err == nil {
		t.Error("decoding a malformed date should fail, silent holes report wrong numbers")
	}
}

func TestDecodeLedger_SortsByDate(t *testing.T) {
	lines := new(bytes.Buffer)
	// Append keeps order sorted; write two lines manually out of order
	// instead.
	if err := EncodeTransaction(lines, NewDeposit(day("2024-02-01"), "", USDm(2))); err != nil {
		t.Fatal(err)
	}
	if err := EncodeTransaction(lines, NewDeposit(day("2024-01-01"), "", USDm(1))); err != nil {
		t.Fatal(err)
	}
	l, err := DecodeLedger(lines)
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if got := l.OldestTransactionDate(); got != day("2024-01-01") {
		t.Errorf("oldest = %s, decode must sort by date", got)
	}
}

func TestValidate_QuickFixes(t *testing.T) {
	ledger := NewLedger()

	// A deposit built by hand, without a constructor: no id, no date.
	raw := Deposit{cashCmd: cashCmd{Amount: USDm(100)}}
	raw.Operation = OpDeposit

	validated, err := ledger.Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validated.ID() == "" {
		t.Error("Validate must assign a missing id")
	}
	if validated.When().IsZero() {
		t.Error("Validate must default a zero date to today")
	}
}

func TestValidate_RejectsNegativeAmounts(t *testing.T) {
	ledger := NewLedger()
	raw := NewDeposit(day("2024-01-10"), "", USDm(100))
	raw.Amount = raw.Amount.Neg()
	if _, err := ledger.Validate(raw); err == nil {
		t.Error("a negative cash magnitude must be rejected, direction comes from the type")
	}
}

func TestValidate_RejectsUnknownCurrency(t *testing.T) {
	ledger := NewLedger()
	raw := NewDeposit(day("2024-01-10"), "", M(100, Currency("GBP")))
	if _, err := ledger.Validate(raw); err == nil {
		t.Error("an unsupported currency must be rejected at entry")
	}
}

func TestValidate_BuyFeeCurrencyMustMatch(t *testing.T) {
	ledger := NewLedger()
	buy := NewBuy(day("2024-01-10"), "", polesye(5), BYNm(3))
	if _, err := ledger.Validate(buy); err == nil {
		t.Error("a fee in a different currency than the security must be rejected")
	}
}

func TestEqual_IgnoresID(t *testing.T) {
	a := NewDeposit(day("2024-01-10"), "funding", USDm(100))
	b := NewDeposit(day("2024-01-10"), "funding", USDm(100))
	if a.ID() == b.ID() {
		t.Fatal("two constructed transactions must get distinct ids")
	}
	if !a.Equal(b) {
		t.Error("Equal compares economic content, not identity")
	}
}
