package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bondfolio/bondfolio"
	"github.com/google/subcommands"
)

// parseDay validates a date flag, defaulting to today when empty.
func parseDay(s string) (bondfolio.Date, error) {
	if s == "" {
		return bondfolio.Today(), nil
	}
	return bondfolio.ParseDate(s)
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	ledger   string
	symbol   string
	name     string
	company  string
	secType  string
	quantity float64
	price    float64
	currency string
	fee      float64
	rate     float64
	maturity string
	note     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase units to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -s <symbol> -q <quantity> -price <price> [-c <currency>] [-fee <fee>] [-n <name>] [-rate <coupon rate>] [-maturity <date>] [-d <date>] [-m <note>]

  Purchases units of a security. The full cost (quantity*price + fee) is
  added to the position's cost basis and to the purchases ledger.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.StringVar(&c.name, "n", "", "Security name, e.g. the bond's full title")
	f.StringVar(&c.company, "company", "", "Issuing company name")
	f.StringVar(&c.secType, "t", "bond", "Security type (bond, stock, etf)")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.price, "price", 0, "Price per unit")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the price")
	f.Float64Var(&c.fee, "fee", 0, "Broker fee, in the security's currency")
	f.Float64Var(&c.rate, "rate", 0, "Annual coupon rate in percent, e.g. 7.7")
	f.StringVar(&c.maturity, "maturity", "", "Bond maturity date (YYYY-MM-DD)")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	secType, err := bondfolio.ParseSecurityType(c.secType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	cur := bondfolio.Currency(c.currency)
	sec := bondfolio.Security{
		Symbol:      c.symbol,
		Name:        c.name,
		CompanyName: c.company,
		Type:        secType,
		Quantity:    bondfolio.Q(c.quantity),
		Price:       bondfolio.M(c.price, cur),
		CouponRate:  bondfolio.Percent(c.rate),
	}
	if c.maturity != "" {
		d, err := bondfolio.ParseDate(c.maturity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing maturity date: %v\n", err)
			return subcommands.ExitUsageError
		}
		sec.MaturityDate = d
	}

	return appendTransaction(c.ledger, bondfolio.NewBuy(day, c.note, sec, bondfolio.M(c.fee, cur)))
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	ledger   string
	symbol   string
	quantity float64
	price    float64
	currency string
	note     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -s <symbol> -q <quantity> -price <price> [-c <currency>] [-d <date>] [-m <note>]

  Sells units of a security. The position's quantity and cost basis are
  reduced proportionally at the average cost.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.price, "price", 0, "Price per unit")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the price")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	sec := bondfolio.Security{
		Symbol:   c.symbol,
		Type:     bondfolio.Bond,
		Quantity: bondfolio.Q(c.quantity),
		Price:    bondfolio.M(c.price, bondfolio.Currency(c.currency)),
	}
	return appendTransaction(c.ledger, bondfolio.NewSell(day, c.note, sec))
}

// --- Maturity Command ---

type maturityCmd struct {
	date     string
	ledger   string
	symbol   string
	quantity float64
	price    float64
	currency string
	note     string
}

func (*maturityCmd) Name() string     { return "maturity" }
func (*maturityCmd) Synopsis() string { return "record a bond redemption at maturity" }
func (*maturityCmd) Usage() string {
	return `maturity -s <symbol> -q <quantity> -price <price> [-c <currency>] [-d <date>] [-m <note>]

  Records a bond redemption. The position is reduced exactly like a sell.
`
}

func (c *maturityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of units redeemed")
	f.Float64Var(&c.price, "price", 0, "Redemption price per unit, usually the nominal value")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the price")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *maturityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	sec := bondfolio.Security{
		Symbol:   c.symbol,
		Type:     bondfolio.Bond,
		Quantity: bondfolio.Q(c.quantity),
		Price:    bondfolio.M(c.price, bondfolio.Currency(c.currency)),
	}
	return appendTransaction(c.ledger, bondfolio.NewMaturity(day, c.note, sec))
}

// --- Coupon Command ---

type couponCmd struct {
	date     string
	ledger   string
	symbol   string
	amount   float64
	currency string
	note     string
}

func (*couponCmd) Name() string     { return "coupon" }
func (*couponCmd) Synopsis() string { return "record a coupon payment" }
func (*couponCmd) Usage() string {
	return `coupon -a <amount> [-c <currency>] [-s <symbol>] [-d <date>] [-m <note>]

  Records a coupon payment into the income ledger. When -s names a holding,
  the payment is also attributed to that position's P&L.
`
}

func (c *couponCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.StringVar(&c.symbol, "s", "", "Symbol of the holding paying the coupon")
	f.Float64Var(&c.amount, "a", 0, "Coupon amount received")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the amount")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *couponCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount := bondfolio.M(c.amount, bondfolio.Currency(c.currency))
	return appendTransaction(c.ledger, bondfolio.NewCoupon(day, c.note, amount, c.symbol))
}

// --- Dividend Command ---

type dividendCmd struct {
	date     string
	ledger   string
	symbol   string
	amount   float64
	currency string
	note     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `dividend -a <amount> [-c <currency>] [-s <symbol>] [-d <date>] [-m <note>]

  Records a dividend payment into the income ledger.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.StringVar(&c.symbol, "s", "", "Symbol of the holding paying the dividend")
	f.Float64Var(&c.amount, "a", 0, "Dividend amount received")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the amount")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount := bondfolio.M(c.amount, bondfolio.Currency(c.currency))
	return appendTransaction(c.ledger, bondfolio.NewDividend(day, c.note, amount, c.symbol))
}

// --- Deposit Command ---

type depositCmd struct {
	date     string
	ledger   string
	amount   float64
	currency string
	note     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record cash added to the account" }
func (*depositCmd) Usage() string {
	return `deposit -a <amount> [-c <currency>] [-d <date>] [-m <note>]

  Records cash funding from outside the portfolio.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.Float64Var(&c.amount, "a", 0, "Amount deposited")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the amount")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount := bondfolio.M(c.amount, bondfolio.Currency(c.currency))
	return appendTransaction(c.ledger, bondfolio.NewDeposit(day, c.note, amount))
}

// --- Debit Command ---

type debitCmd struct {
	date     string
	ledger   string
	amount   float64
	currency string
	note     string
}

func (*debitCmd) Name() string     { return "debit" }
func (*debitCmd) Synopsis() string { return "record cash withdrawn from the account" }
func (*debitCmd) Usage() string {
	return `debit -a <amount> [-c <currency>] [-d <date>] [-m <note>]

  Records a cash withdrawal. The amount is a positive magnitude; the
  direction comes from the transaction type.
`
}

func (c *debitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.Float64Var(&c.amount, "a", 0, "Amount withdrawn")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the amount")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *debitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount := bondfolio.M(c.amount, bondfolio.Currency(c.currency))
	return appendTransaction(c.ledger, bondfolio.NewDebit(day, c.note, amount))
}

// --- Credit Command ---

type creditCmd struct {
	date     string
	ledger   string
	amount   float64
	currency string
	note     string
}

func (*creditCmd) Name() string     { return "credit" }
func (*creditCmd) Synopsis() string { return "record a broker credit event" }
func (*creditCmd) Usage() string {
	return `credit -a <amount> [-c <currency>] [-d <date>] [-m <note>]

  Records a broker credit event for the books. Credits do not move any of
  the cash ledgers.
`
}

func (c *creditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ledger, "l", "", "Ledger to record into")
	f.Float64Var(&c.amount, "a", 0, "Credit amount")
	f.StringVar(&c.currency, "c", string(bondfolio.USD), "Currency of the amount")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *creditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount := bondfolio.M(c.amount, bondfolio.Currency(c.currency))
	return appendTransaction(c.ledger, bondfolio.NewCredit(day, c.note, amount))
}
