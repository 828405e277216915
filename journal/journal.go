// Package journal records closed option trades for later review,
// independent of the ledger's own JSON state.
package journal

import "time"

// TradeRecord is one closed trade as written to the journal.
type TradeRecord struct {
	TradeID    string
	Ticker     string
	Contract   string
	OptionType string
	Contracts  int

	EntryPrice float64
	ExitPrice  float64
	EntryDate  time.Time
	ExitDate   time.Time

	PnLDollars float64
	Result     string
	ExitReason string
}

// Journal appends trade records somewhere durable.
type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}
