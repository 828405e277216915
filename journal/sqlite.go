package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal writes trades to a local SQLite database.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database and applies the schema.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, ticker, contract, option_type, contracts,
		 entry_price, exit_price, entry_date, exit_date,
		 pnl_dollars, result, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Ticker, t.Contract, t.OptionType, t.Contracts,
		t.EntryPrice, t.ExitPrice, t.EntryDate, t.ExitDate,
		t.PnLDollars, t.Result, t.ExitReason,
	)
	return err
}

// Trades returns every journaled trade, oldest first.
func (j *SQLiteJournal) Trades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, ticker, contract, option_type, contracts,
		       entry_price, exit_price, entry_date, exit_date,
		       pnl_dollars, result, exit_reason
		FROM trades ORDER BY exit_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.TradeID, &t.Ticker, &t.Contract, &t.OptionType, &t.Contracts,
			&t.EntryPrice, &t.ExitPrice, &t.EntryDate, &t.ExitDate,
			&t.PnLDollars, &t.Result, &t.ExitReason,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
