package bondfolio

import "testing"

func TestExtractCouponRate(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want Percent
		ok   bool
	}{
		{"trailing rate", `СОАО "ПП Полесье" 7.70%`, 7.7, true},
		{"integer rate", `ООО "Эмитент" 10%`, 10, true},
		{"rate with space", "Bond 8.25 %", 8.25, true},
		{"no rate", "Some Company Bond", 0, false},
		{"empty", "", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractCouponRate(tc.in)
			if ok != tc.ok || !got.Equal(tc.want) {
				t.Errorf("ExtractCouponRate(%q) = %s, %v; want %s, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestExtractMaturityDate(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"embedded date", "Bond до 15.09.2026", "2026-09-15", true},
		{"date and rate", `ЗАО "Эмитент" 9.50% до 01.03.2027`, "2027-03-01", true},
		{"no date", `СОАО "ПП Полесье" 7.70%`, "", false},
		{"nonsense date", "Bond до 99.99.2026", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractMaturityDate(tc.in)
			if ok != tc.ok {
				t.Fatalf("ExtractMaturityDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if ok && got != day(tc.want) {
				t.Errorf("ExtractMaturityDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestSecurity_Validate(t *testing.T) {
	valid := polesye(5)
	if err := valid.Validate(); err != nil {
		t.Errorf("valid security rejected: %v", err)
	}

	noSymbol := valid
	noSymbol.Symbol = ""
	if err := noSymbol.Validate(); err == nil {
		t.Error("security without a symbol should be rejected")
	}

	badCurrency := valid
	badCurrency.Price = M(100, Currency("GBP"))
	if err := badCurrency.Validate(); err == nil {
		t.Error("security with an unsupported currency should be rejected")
	}
}

func TestSecurity_Cost(t *testing.T) {
	sec := polesye(6)
	if got := sec.Cost(); !got.Equal(USDm(600)) {
		t.Errorf("Cost = %s, want 600 USD", got)
	}
}
