package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade(id string, exitDate time.Time) TradeRecord {
	return TradeRecord{
		TradeID:    id,
		Ticker:     "NVDA",
		Contract:   "NVDA 04/17 $180 Call",
		OptionType: "call",
		Contracts:  2,
		EntryPrice: 4.2,
		ExitPrice:  8.4,
		EntryDate:  exitDate.AddDate(0, 0, -7),
		ExitDate:   exitDate,
		PnLDollars: 840,
		Result:     "WIN",
		ExitReason: "TARGET",
	}
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	day := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("T2", day.AddDate(0, 0, 1))))
	require.NoError(t, j.RecordTrade(sampleTrade("T1", day)))

	trades, err := j.Trades()
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// Oldest exit first.
	assert.Equal(t, "T1", trades[0].TradeID)
	assert.Equal(t, "T2", trades[1].TradeID)

	got := trades[0]
	assert.Equal(t, "NVDA", got.Ticker)
	assert.Equal(t, 2, got.Contracts)
	assert.InDelta(t, 4.2, got.EntryPrice, 1e-9)
	assert.InDelta(t, 840.0, got.PnLDollars, 1e-9)
	assert.Equal(t, "WIN", got.Result)
	assert.True(t, got.ExitDate.Equal(day))
}

func TestSQLiteJournalDuplicateID(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", day)))
	assert.Error(t, j.RecordTrade(sampleTrade("T1", day)))
}

func TestSQLiteJournalReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	j, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", day)))
	require.NoError(t, j.Close())

	// Schema application is idempotent and data survives reopen.
	j, err = NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	trades, err := j.Trades()
	require.NoError(t, err)
	assert.Len(t, trades, 1)
}

func TestCSVJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	day := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", day)))
	require.NoError(t, j.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "trade_id", rows[0][0])
	assert.Equal(t, []string{
		"T1", "NVDA", "NVDA 04/17 $180 Call", "call", "2",
		"4.20", "8.40",
		day.AddDate(0, 0, -7).Format(time.RFC3339), day.Format(time.RFC3339),
		"840.00", "WIN", "TARGET",
	}, rows[1])
}

func TestCSVJournalBadPath(t *testing.T) {
	_, err := NewCSV(filepath.Join(t.TempDir(), "missing", "journal.csv"))
	assert.Error(t, err)
}
