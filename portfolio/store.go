package portfolio

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Store persists the two ledger collections. Implementations do not
// need to be safe for concurrent use; the Ledger serializes access.
type Store interface {
	Load() (open []Position, history []ClosedTrade, err error)
	Save(open []Position, history []ClosedTrade) error
}

// FileStore keeps each collection in its own JSON file. Writes go
// through a temp file and rename
// so a partial write never corrupts a collection. History is written
// before the open set: a crash between the two can leave a closed id
// still present in the open file, which Load repairs by dropping open
// positions already recorded in history.
type FileStore struct {
	PortfolioPath string
	HistoryPath   string
}

type portfolioFile struct {
	Positions []Position `json:"positions"`
}

type historyFile struct {
	Trades []ClosedTrade `json:"trades"`
}

// NewFileStore places portfolio.json and trade_history.json in dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		PortfolioPath: filepath.Join(dir, "portfolio.json"),
		HistoryPath:   filepath.Join(dir, "trade_history.json"),
	}
}

func (fs *FileStore) Load() ([]Position, []ClosedTrade, error) {
	var pf portfolioFile
	if err := readJSON(fs.PortfolioPath, &pf); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", fs.PortfolioPath, err)
	}
	var hf historyFile
	if err := readJSON(fs.HistoryPath, &hf); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", fs.HistoryPath, err)
	}

	// Restore the open/history disjointness invariant after a crash
	// between the two Save writes.
	closed := make(map[string]bool, len(hf.Trades))
	for _, t := range hf.Trades {
		closed[t.ID] = true
	}
	open := pf.Positions[:0]
	for _, p := range pf.Positions {
		if !closed[p.ID] {
			open = append(open, p)
		}
	}

	return open, hf.Trades, nil
}

func (fs *FileStore) Save(open []Position, history []ClosedTrade) error {
	if err := writeJSON(fs.HistoryPath, historyFile{Trades: history}); err != nil {
		return fmt.Errorf("write %s: %w", fs.HistoryPath, err)
	}
	if err := writeJSON(fs.PortfolioPath, portfolioFile{Positions: open}); err != nil {
		return fmt.Errorf("write %s: %w", fs.PortfolioPath, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// MemStore is an in-memory Store for tests and ephemeral runs.
type MemStore struct {
	open    []Position
	history []ClosedTrade
}

func (m *MemStore) Load() ([]Position, []ClosedTrade, error) {
	open := make([]Position, len(m.open))
	copy(open, m.open)
	history := make([]ClosedTrade, len(m.history))
	copy(history, m.history)
	return open, history, nil
}

func (m *MemStore) Save(open []Position, history []ClosedTrade) error {
	m.open = make([]Position, len(open))
	copy(m.open, open)
	m.history = make([]ClosedTrade, len(history))
	copy(m.history, history)
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
