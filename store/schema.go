package store

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	ledger TEXT NOT NULL,
	type TEXT NOT NULL,
	date TEXT NOT NULL,
	line TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_ledger ON transactions(ledger);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`
