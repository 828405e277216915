package journal

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	ticker TEXT NOT NULL,
	contract TEXT NOT NULL,
	option_type TEXT NOT NULL,
	contracts INTEGER NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	entry_date DATETIME NOT NULL,
	exit_date DATETIME NOT NULL,
	pnl_dollars REAL NOT NULL,
	result TEXT NOT NULL,
	exit_reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
CREATE INDEX IF NOT EXISTS idx_trades_exit_date ON trades(exit_date);
`
