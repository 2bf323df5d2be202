// Package renderer turns portfolio structures into markdown reports meant
// for terminal rendering.
package renderer

import (
	"fmt"
	"strings"

	"github.com/bondfolio/bondfolio"
)

// RenderPortfolio renders a calculated portfolio snapshot to markdown:
// headline totals, cash balances, and open positions.
func RenderPortfolio(name string, p *bondfolio.CalculatedPortfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio %s\n\n", name)
	fmt.Fprintf(&b, "as of %s\n\n", p.LastUpdated)

	fmt.Fprintf(&b, "- Total deposited: **%s**\n", p.TotalDeposited)
	fmt.Fprintf(&b, "- Annualized yield: **%s**\n\n", p.Yield)

	fmt.Fprintln(&b, "## Cash")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Currency | Net Cash | Total Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, c := range bondfolio.Currencies() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c, p.Balances[c], p.TotalValue[c])
	}
	fmt.Fprintln(&b)

	if len(p.Securities) > 0 {
		fmt.Fprintln(&b, "## Securities")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Symbol | Name | Qty | Avg Price | Invested | Coupons | Unrealized P&L | Rate | Maturity | Monthly |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|:---|---:|")
		for _, s := range p.Securities {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				s.Symbol,
				s.Name,
				s.Quantity,
				s.AveragePrice,
				s.TotalInvested,
				s.Coupons,
				s.UnrealizedPnL.SignedString(),
				percentCell(s.CouponRate),
				dateCell(s.MaturityDate),
				moneyCell(s.MonthlyIncome),
			)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

// RenderTransactions renders the ledger's transaction log as a markdown
// table, oldest first.
func RenderTransactions(ledger *bondfolio.Ledger) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions %s\n\n", ledger.Name())
	fmt.Fprintln(&b, "| Date | Type | Detail | Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|")
	for _, tx := range ledger.Transactions() {
		detail, amount := describe(tx)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", tx.When(), tx.What(), detail, amount)
	}
	fmt.Fprintln(&b)
	return b.String()
}

// RenderYield renders the cash-flow series behind a yield figure, so the
// number can be audited by eye.
func RenderYield(name string, flows []bondfolio.CashFlow, yield bondfolio.Percent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Yield %s\n\n", name)
	fmt.Fprintf(&b, "Annualized yield: **%s**\n\n", yield)
	fmt.Fprintln(&b, "| Date | Flow |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, cf := range flows {
		fmt.Fprintf(&b, "| %s | %+.2f %s |\n", cf.Date, cf.Amount, bondfolio.ReferenceCurrency)
	}
	fmt.Fprintln(&b)
	return b.String()
}

func describe(tx bondfolio.Transaction) (detail, amount string) {
	switch v := tx.(type) {
	case bondfolio.Buy:
		return fmt.Sprintf("%s x %s @ %s", v.Security.Symbol, v.Security.Quantity, v.Security.Price), v.Cost().String()
	case bondfolio.Sell:
		return fmt.Sprintf("%s x %s @ %s", v.Security.Symbol, v.Security.Quantity, v.Security.Price), v.Security.Cost().String()
	case bondfolio.Maturity:
		return fmt.Sprintf("%s x %s", v.Security.Symbol, v.Security.Quantity), v.Security.Cost().String()
	case bondfolio.Coupon:
		return v.Symbol, v.Amount.String()
	case bondfolio.Dividend:
		return v.Symbol, v.Amount.String()
	case bondfolio.Deposit:
		return "", v.Amount.String()
	case bondfolio.Debit:
		return "", v.Amount.String()
	case bondfolio.Credit:
		return "", v.Amount.String()
	}
	return "", ""
}

func percentCell(p bondfolio.Percent) string {
	if p.IsZero() {
		return ""
	}
	return p.String()
}

func dateCell(d bondfolio.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func moneyCell(m bondfolio.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}
