package bondfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes transactions from a stream of JSONL data, one JSON
// object per line, and returns a sorted Ledger. The "type" field of each
// line selects the transaction struct; a line that carries an unknown type
// or a malformed date fails the whole decode, because a ledger with silent
// holes would report wrong numbers.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var identifier struct {
			Operation OperationType `json:"type"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify operation in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction
		var err error

		switch identifier.Operation {
		case OpBuy:
			var tx Buy
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpSell:
			var tx Sell
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpMaturity:
			var tx Maturity
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpCoupon:
			var tx Coupon
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpDividend:
			var tx Dividend
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpDeposit:
			var tx Deposit
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpDebit:
			var tx Debit
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case OpCredit:
			var tx Credit
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		default:
			err = fmt.Errorf("unknown transaction type: %q", identifier.Operation)
		}

		if err != nil {
			return nil, fmt.Errorf("decoding line %q: %w", string(lineBytes), err)
		}
		ledger.Append(decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}

// EncodeTransaction marshals a single transaction and writes it to the
// writer followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger reorders transactions by date and persists them to an
// io.Writer in JSONL format. The sort is stable, so transactions on the
// same day keep their relative order, and the key order within each line is
// fixed by the marshalers, making the output canonical.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
