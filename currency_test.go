package bondfolio

import (
	"math"
	"testing"
)

func TestConvert_Identity(t *testing.T) {
	// Converting to the same currency must return the amount unchanged,
	// exactly, for every supported currency.
	for _, c := range Currencies() {
		in := M(123.456789, c)
		got, err := Convert(in, c)
		if err != nil {
			t.Fatalf("Convert(%s, %s): %v", in, c, err)
		}
		if !got.Equal(in) {
			t.Errorf("Convert(%s, %s) = %s, want exact identity", in, c, got)
		}
	}
}

func TestConvert_ComposesThroughReference(t *testing.T) {
	// A cross conversion is defined as to-USD then from-USD. BYN->EUR must
	// equal ToReference then FromReference applied by hand.
	in := BYNm(100)

	viaRef, err := ToReference(in)
	if err != nil {
		t.Fatal(err)
	}
	want, err := FromReference(viaRef, EUR)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Convert(in, EUR)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("Convert(100 BYN, EUR) = %s, want %s", got, want)
	}
}

func TestToReference_Rates(t *testing.T) {
	testCases := []struct {
		in   Money
		want float64
	}{
		{USDm(100), 100},
		{BYNm(100), 31},    // 100 * 0.31
		{EURm(100), 105},   // 100 * 1.05
		{RUBm(1000), 11.0}, // 1000 * 0.011
	}
	for _, tc := range testCases {
		got, err := ToReference(tc.in)
		if err != nil {
			t.Fatalf("ToReference(%s): %v", tc.in, err)
		}
		if math.Abs(got.AsFloat()-tc.want) > 1e-9 {
			t.Errorf("ToReference(%s) = %s, want %.2f USD", tc.in, got, tc.want)
		}
		if got.Currency() != USD {
			t.Errorf("ToReference(%s) currency = %s, want USD", tc.in, got.Currency())
		}
	}
}

func TestFromReference_Rates(t *testing.T) {
	testCases := []struct {
		to   Currency
		want float64
	}{
		{BYN, 323},  // 100 * 3.23
		{EUR, 95},   // 100 * 0.95
		{RUB, 9100}, // 100 * 91.0
	}
	for _, tc := range testCases {
		got, err := FromReference(USDm(100), tc.to)
		if err != nil {
			t.Fatalf("FromReference(100 USD, %s): %v", tc.to, err)
		}
		if math.Abs(got.AsFloat()-tc.want) > 1e-9 {
			t.Errorf("FromReference(100 USD, %s) = %s, want %.2f", tc.to, got, tc.want)
		}
	}
}

func TestConvert_UnknownCurrency(t *testing.T) {
	if _, err := Convert(M(10, Currency("GBP")), USD); err == nil {
		t.Error("Convert from GBP should fail, the currency is not supported")
	}
	if _, err := Convert(USDm(10), Currency("GBP")); err == nil {
		t.Error("Convert to GBP should fail, the currency is not supported")
	}
}

func TestSumAsReference(t *testing.T) {
	got, err := SumAsReference(USDm(100), BYNm(100), EURm(100))
	if err != nil {
		t.Fatal(err)
	}
	want := 100 + 31 + 105.0
	if math.Abs(got.AsFloat()-want) > 1e-9 {
		t.Errorf("SumAsReference = %s, want %.2f USD", got, want)
	}
}
