package bondfolio

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// OperationType is a typed string for identifying transaction operations.
type OperationType string

// Operation types used for identifying transactions.
const (
	OpBuy      OperationType = "buy"
	OpSell     OperationType = "sell"
	OpCoupon   OperationType = "coupon"
	OpMaturity OperationType = "maturity"
	OpDeposit  OperationType = "deposit"
	OpCredit   OperationType = "credit"
	OpDebit    OperationType = "debit"
	OpDividend OperationType = "dividend"
)

// Transaction defines the common interface for all types of economic events
// that can be recorded in the ledger.
type Transaction interface {
	What() OperationType // What returns the operation type of the transaction (e.g., "buy", "deposit").
	When() Date          // When returns the date on which the transaction occurred.
	ID() string          // ID returns the unique identifier assigned at creation.
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

type baseCmd struct {
	Ident     string        `json:"id"`             // Ident uniquely identifies the transaction; assigned at creation, never reused.
	Operation OperationType `json:"type"`           // Operation specifies the type of transaction (e.g., "buy", "deposit").
	Date      Date          `json:"date"`           // Date is the date when the transaction took place.
	Note      string        `json:"note,omitempty"` // Note provides an optional rationale for the transaction.
}

func newBaseCmd(op OperationType, day Date, note string) baseCmd {
	return baseCmd{Ident: uuid.New().String(), Operation: op, Date: day, Note: note}
}

// What returns the operation name for the transaction.
func (t baseCmd) What() OperationType { return t.Operation }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// ID returns the unique identifier of the transaction.
func (t baseCmd) ID() string { return t.Ident }

// equal compares the economic content of two base commands. The id is
// identity, not content, so it is deliberately left out.
func (t baseCmd) equal(o baseCmd) bool {
	return t.Operation == o.Operation && t.Date == o.Date && t.Note == o.Note
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.Ident)
	w.Append("type", t.Operation)
	w.Append("date", t.Date)
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's
// zero and assigns an id if the transaction was built without a constructor.
// It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if t.Ident == "" {
		t.Ident = uuid.New().String()
	}
}

// secCmd is a component for security-based transactions (buy, sell, maturity).
type secCmd struct {
	baseCmd
	Security Security `json:"security"` // Security is the asset payload of the transaction.
}

// Validate checks the security command fields.
func (t *secCmd) Validate() error {
	t.baseCmd.Validate()
	return t.Security.Validate()
}

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

func (t secCmd) equal(o secCmd) bool {
	return t.baseCmd.equal(o.baseCmd) &&
		t.Security.Symbol == o.Security.Symbol &&
		t.Security.Quantity.Equal(o.Security.Quantity) &&
		t.Security.Price.Equal(o.Security.Price)
}

// cashCmd is a component for cash-moving transactions (deposit, debit,
// coupon, dividend). Amount is always a non-negative magnitude; the
// operation type determines the direction.
type cashCmd struct {
	baseCmd
	Amount Money // Amount is the magnitude of cash moved.
}

// Validate checks the cash command fields.
func (t *cashCmd) Validate() error {
	t.baseCmd.Validate()
	if t.Amount.IsNegative() {
		return fmt.Errorf("cash amount must be a non-negative magnitude, got %s", t.Amount)
	}
	if t.Amount.IsZero() {
		return errors.New("cash amount must be positive")
	}
	return ValidateCurrency(t.Amount.Currency())
}

// MarshalJSON implements the json.Marshaler interface for cashCmd.
func (t cashCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("cash", t.Amount)
	return w.MarshalJSON()
}

func (t cashCmd) equal(o cashCmd) bool {
	return t.baseCmd.equal(o.baseCmd) && t.Amount.Equal(o.Amount)
}

// amountJSON is a specialized struct to decode a cash payload in two fields.
type amountJSON struct {
	Amount   Quantity `json:"amount"`
	Currency Currency `json:"currency"`
}

func (a amountJSON) Money() Money { return M(a.Amount.value, a.Currency) }

// cashJSON is the decoded form of a cashCmd.
type cashJSON struct {
	baseCmd
	Cash amountJSON `json:"cash"`
}

func (t cashJSON) cashCmd() cashCmd {
	return cashCmd{baseCmd: t.baseCmd, Amount: t.Cash.Money()}
}

// --- Buy ---

// Buy represents a transaction where a quantity of a security is purchased.
// The fee, if any, is added to the cost basis and to the asset-purchase
// cash ledger.
type Buy struct {
	secCmd
	Fee Money // Fee is the transaction cost; zero when absent.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, note string, security Security, fee Money) Buy {
	return Buy{
		secCmd: secCmd{baseCmd: newBaseCmd(OpBuy, day, note), Security: security},
		Fee:    fee,
	}
}

// Cost is the total cash outflow of the purchase: quantity*price + fee.
func (t Buy) Cost() Money { return t.Security.Cost().Add(t.Fee) }

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.value)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		Fee Quantity `json:"fee"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	// The fee shares the security's currency.
	t.Fee = M(temp.Fee.value, temp.Security.Price.Currency())
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd.equal(o.secCmd) && t.Fee.Equal(o.Fee)
}

// Validate checks the Buy transaction's fields. It ensures the payload is
// well formed and the fee, when present, is non-negative and in the
// security's currency.
func (t Buy) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(); err != nil {
		return t, err
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("buy fee must not be negative, got %s", t.Fee)
	}
	if c := t.Fee.Currency(); c != "" && c != t.Security.Price.Currency() {
		return t, fmt.Errorf("buy fee currency %s does not match security currency %s", c, t.Security.Price.Currency())
	}
	return t, nil
}

// --- Sell ---

// Sell represents a transaction where a quantity of a security is sold.
// The cost basis is reduced proportionally at the pre-sale average cost.
type Sell struct {
	secCmd
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, note string, security Security) Sell {
	return Sell{secCmd: secCmd{baseCmd: newBaseCmd(OpSell, day, note), Security: security}}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	return w.MarshalJSON()
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd.equal(o.secCmd)
}

// Validate checks the Sell transaction's fields. Selling more than the
// position held on that date is accepted but warned about: the aggregator
// clamps the position at zero, so the ledger stays tolerant of imperfect
// historical data.
func (t Sell) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(); err != nil {
		return t, err
	}
	warnOnOversell(ledger, t.When(), t.Security)
	return t, nil
}

// --- Maturity ---

// Maturity represents a bond redemption at maturity. It affects the position
// exactly like a sell: quantity and cost basis are reduced proportionally.
type Maturity struct {
	secCmd
}

// NewMaturity creates a new Maturity transaction.
func NewMaturity(day Date, note string, security Security) Maturity {
	return Maturity{secCmd: secCmd{baseCmd: newBaseCmd(OpMaturity, day, note), Security: security}}
}

// MarshalJSON implements the json.Marshaler interface for Maturity.
func (t Maturity) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	return w.MarshalJSON()
}

func (t Maturity) Equal(other Transaction) bool {
	o, ok := other.(Maturity)
	return ok && t.secCmd.equal(o.secCmd)
}

// Validate checks the Maturity transaction's fields.
func (t Maturity) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(); err != nil {
		return t, err
	}
	warnOnOversell(ledger, t.When(), t.Security)
	return t, nil
}

// --- Coupon ---

// Coupon represents a coupon payment received in cash. When the payment is
// tied to a holding, Symbol names it so the assembler can attribute the
// income to that position's unrealized P&L.
type Coupon struct {
	cashCmd
	Symbol string `json:"symbol,omitempty"`
}

// NewCoupon creates a new Coupon transaction. symbol may be empty for
// payments not tied to a tracked holding.
func NewCoupon(day Date, note string, amount Money, symbol string) Coupon {
	return Coupon{
		cashCmd: cashCmd{baseCmd: newBaseCmd(OpCoupon, day, note), Amount: amount},
		Symbol:  symbol,
	}
}

// MarshalJSON implements the json.Marshaler interface for Coupon.
func (t Coupon) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.cashCmd)
	w.Optional("symbol", t.Symbol)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Coupon.
func (t *Coupon) UnmarshalJSON(data []byte) error {
	var temp struct {
		cashJSON
		Symbol string `json:"symbol,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.cashCmd = temp.cashCmd()
	t.Symbol = temp.Symbol
	return nil
}

func (t Coupon) Equal(other Transaction) bool {
	o, ok := other.(Coupon)
	return ok && t.cashCmd.equal(o.cashCmd) && t.Symbol == o.Symbol
}

// Validate checks the Coupon transaction's fields.
func (t Coupon) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.cashCmd.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// --- Dividend ---

// Dividend represents a dividend payment received in cash. Like Coupon, it
// may reference a holding by symbol.
type Dividend struct {
	cashCmd
	Symbol string `json:"symbol,omitempty"`
}

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, note string, amount Money, symbol string) Dividend {
	return Dividend{
		cashCmd: cashCmd{baseCmd: newBaseCmd(OpDividend, day, note), Amount: amount},
		Symbol:  symbol,
	}
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.cashCmd)
	w.Optional("symbol", t.Symbol)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Dividend.
func (t *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		cashJSON
		Symbol string `json:"symbol,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.cashCmd = temp.cashCmd()
	t.Symbol = temp.Symbol
	return nil
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.cashCmd.equal(o.cashCmd) && t.Symbol == o.Symbol
}

// Validate checks the Dividend transaction's fields.
func (t Dividend) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.cashCmd.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// --- Deposit ---

// Deposit represents cash added to the tracked account from outside.
type Deposit struct {
	cashCmd
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day Date, note string, amount Money) Deposit {
	return Deposit{cashCmd: cashCmd{baseCmd: newBaseCmd(OpDeposit, day, note), Amount: amount}}
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.cashCmd)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Deposit.
func (t *Deposit) UnmarshalJSON(data []byte) error {
	var temp cashJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.cashCmd = temp.cashCmd()
	return nil
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.cashCmd.equal(o.cashCmd)
}

// Validate checks the Deposit transaction's fields.
func (t Deposit) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.cashCmd.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// --- Debit ---

// Debit represents cash withdrawn from the tracked account.
type Debit struct {
	cashCmd
}

// NewDebit creates a new Debit transaction.
func NewDebit(day Date, note string, amount Money) Debit {
	return Debit{cashCmd: cashCmd{baseCmd: newBaseCmd(OpDebit, day, note), Amount: amount}}
}

// MarshalJSON implements the json.Marshaler interface for Debit.
func (t Debit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.cashCmd)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Debit.
func (t *Debit) UnmarshalJSON(data []byte) error {
	var temp cashJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.cashCmd = temp.cashCmd()
	return nil
}

func (t Debit) Equal(other Transaction) bool {
	o, ok := other.(Debit)
	return ok && t.cashCmd.equal(o.cashCmd)
}

// Validate checks the Debit transaction's fields.
func (t Debit) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.cashCmd.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// --- Credit ---

// Credit represents a broker credit event. It is recorded for completeness
// but does not move any of the four cash ledgers.
type Credit struct {
	cashCmd
}

// NewCredit creates a new Credit transaction.
func NewCredit(day Date, note string, amount Money) Credit {
	return Credit{cashCmd: cashCmd{baseCmd: newBaseCmd(OpCredit, day, note), Amount: amount}}
}

// MarshalJSON implements the json.Marshaler interface for Credit.
func (t Credit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.cashCmd)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Credit.
func (t *Credit) UnmarshalJSON(data []byte) error {
	var temp cashJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.cashCmd = temp.cashCmd()
	return nil
}

func (t Credit) Equal(other Transaction) bool {
	o, ok := other.(Credit)
	return ok && t.cashCmd.equal(o.cashCmd)
}

// Validate checks the Credit transaction's fields.
func (t Credit) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.cashCmd.Validate(); err != nil {
		return t, err
	}
	return t, nil
}
