package bondfolio

// DemoLedger returns a small ready-made ledger: a funding deposit, two
// Belarusian corporate bond purchases, and their first coupon payments. It
// exists so a new user can explore reports before recording real data.
func DemoLedger() *Ledger {
	ledger := NewLedger()
	ledger.SetName("demo")

	ledger.Append(
		NewDeposit(NewDate(2024, 1, 15), "Account funding for investments", M(2000, USD)),
		NewBuy(NewDate(2024, 1, 16), "Polesie bonds purchase", Security{
			Symbol:   "BY_POLESYE_01",
			Name:     `СОАО "ПП Полесье" 7.70%`,
			Type:     Bond,
			Quantity: Q(6),
			Price:    M(100, USD),
		}, M(5, USD)),
		NewBuy(NewDate(2024, 1, 20), "Zubr Auto bonds purchase", Security{
			Symbol:   "BY_ZUBR_AUTO_01",
			Name:     `ООО "ЗУБР АВТОГРУПП" 10.00%`,
			Type:     Bond,
			Quantity: Q(5),
			Price:    M(100, USD),
		}, M(4, USD)),
		NewCoupon(NewDate(2024, 2, 15), "Polesie bonds coupon income (semi-annual)", M(23.10, USD), "BY_POLESYE_01"),
		NewCoupon(NewDate(2024, 2, 20), "Zubr Auto bonds coupon income (semi-annual)", M(25, USD), "BY_ZUBR_AUTO_01"),
	)
	return ledger
}
