// Package bondfolio tracks an investor's bond and cash transactions and
// derives portfolio-level metrics from them.
//
// The package is organized around a single recomputation pipeline: an
// append-only [Ledger] of transactions is folded into per-security holdings
// with average-cost accounting, per-currency cash balances, and a
// money-weighted annualized return (XIRR) computed over the deposit and
// income cash flows.
//
// The core functionalities include:
//   - Ledger Management: Recording buys, sells, coupons, maturities,
//     deposits, debits, credits and dividends in a chronological record with
//     create/update/delete-by-id operations.
//   - Holdings Aggregation: Folding the ledger into per-security positions
//     (quantity, weighted-average cost basis) and per-currency cash ledgers.
//   - Valuation: Assembling a [CalculatedPortfolio] with unrealized P&L,
//     total value and total deposited capital, plus an annualized yield from
//     the XIRR solver.
//   - Currency Conversion: A fixed-rate table over the four supported
//     currencies (BYN, USD, EUR, RUB), pivoting through USD.
//   - Data Persistence: Encoding and decoding the ledger to and from a
//     human-readable, version-controllable JSONL format.
//
// This package serves as the foundational logic for the `bfo` command-line
// tool; every report is recomputed from scratch from the full transaction
// list, so there is no hidden state between invocations.
package bondfolio
