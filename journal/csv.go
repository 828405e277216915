package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends trades to a flat CSV file.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV creates the file and writes the header row.
func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"trade_id", "ticker", "contract", "option_type", "contracts",
		"entry_price", "exit_price", "entry_date", "exit_date",
		"pnl_dollars", "result", "exit_reason",
	}); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	if err := j.w.Write([]string{
		t.TradeID,
		t.Ticker,
		t.Contract,
		t.OptionType,
		strconv.Itoa(t.Contracts),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.EntryDate.Format(time.RFC3339),
		t.ExitDate.Format(time.RFC3339),
		f(t.PnLDollars),
		t.Result,
		t.ExitReason,
	}); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
