package bondfolio

// USDm is a helper for tests to create usd money from const.
func USDm(v float64) Money { return M(v, USD) }

// BYNm is a helper for tests to create byn money from const.
func BYNm(v float64) Money { return M(v, BYN) }

// EURm is a helper for tests to create eur money from const.
func EURm(v float64) Money { return M(v, EUR) }

// RUBm is a helper for tests to create rub money from const.
func RUBm(v float64) Money { return M(v, RUB) }

// day is a short hand to build a date in tests.
func day(s string) Date { return MustParseDate(s) }

// polesye builds the security payload used across tests: a real Belarusian
// corporate bond whose name carries the coupon rate.
func polesye(qty float64) Security {
	return Security{
		Symbol:   "BY_POLESYE_01",
		Name:     `СОАО "ПП Полесье" 7.70%`,
		Type:     Bond,
		Quantity: Q(qty),
		Price:    USDm(100),
	}
}

func zubr(qty float64) Security {
	return Security{
		Symbol:   "BY_ZUBR_AUTO_01",
		Name:     `ООО "ЗУБР АВТОГРУПП" 10.00%`,
		Type:     Bond,
		Quantity: Q(qty),
		Price:    USDm(100),
	}
}
