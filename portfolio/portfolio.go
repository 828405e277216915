// Package portfolio is the paper-trading ledger: open positions and
// closed-trade history persisted as JSON collections, with live P&L
// revaluation and exit-condition detection. The Ledger is the sole
// owner and mutator of both collections; every operation serializes the
// load-mutate-save cycle behind one mutex.
package portfolio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/swing/journal"
	"github.com/rustyeddy/swing/options"
	"github.com/rustyeddy/swing/pkg/id"
)

// Position statuses.
const (
	StatusOpen          = "OPEN"
	StatusClosedWin     = "CLOSED_WIN"
	StatusClosedLoss    = "CLOSED_LOSS"
	StatusClosedExpired = "CLOSED_EXPIRED"
)

// Trade results.
const (
	ResultWin       = "WIN"
	ResultLoss      = "LOSS"
	ResultBreakeven = "BREAKEVEN"
)

// Exit reasons.
const (
	ExitTarget  = "TARGET"
	ExitStop    = "STOP"
	ExitManual  = "MANUAL"
	ExitExpired = "EXPIRED"
)

// ErrNotFound is returned when a position id is not in the open set.
var ErrNotFound = errors.New("portfolio: position not found")

// Position is one open option position. Entry fields are immutable
// after Open; Update rewrites only the valuation fields.
type Position struct {
	ID         string    `json:"id"`
	Ticker     string    `json:"ticker"`
	Contract   string    `json:"contract"`
	OptionType string    `json:"option_type"`
	Strike     float64   `json:"strike"`
	Expiration time.Time `json:"expiration"`

	EntryDate  time.Time `json:"entry_date"`
	EntryPrice float64   `json:"entry_price"`
	Contracts  int       `json:"contracts"`
	CostBasis  float64   `json:"cost_basis"`

	TargetPrice float64 `json:"target_price"`
	StopPrice   float64 `json:"stop_price"`
	StockTarget float64 `json:"stock_target"`

	CurrentPrice float64 `json:"current_price"`
	CurrentValue float64 `json:"current_value"`
	PnLDollars   float64 `json:"pnl_dollars"`
	PnLPercent   float64 `json:"pnl_percent"`

	Status string `json:"status"`
}

// ClosedTrade is the history record a Position converts into on close.
type ClosedTrade struct {
	ID         string `json:"id"`
	Ticker     string `json:"ticker"`
	Contract   string `json:"contract"`
	OptionType string `json:"option_type"`

	EntryDate  time.Time `json:"entry_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitDate   time.Time `json:"exit_date"`
	ExitPrice  float64   `json:"exit_price"`
	Contracts  int       `json:"contracts"`

	PnLDollars float64 `json:"pnl_dollars"`
	PnLPercent float64 `json:"pnl_percent"`
	Result     string  `json:"result"`
	ExitReason string  `json:"exit_reason"`
}

// OpenRequest carries everything needed to open a position.
type OpenRequest struct {
	Ticker     string
	Contract   string
	OptionType string
	Strike     float64
	Expiration time.Time

	EntryPrice float64
	Contracts  int

	TargetPrice float64
	StopPrice   float64
	StockTarget float64
}

// FromTrade fills an OpenRequest from a selected option trade.
func FromTrade(t *options.Trade, contracts int) OpenRequest {
	return OpenRequest{
		Ticker:      t.Ticker,
		Contract:    t.Contract,
		OptionType:  t.OptionType,
		Strike:      t.Strike,
		Expiration:  t.Expiration,
		EntryPrice:  t.EntryPrice,
		Contracts:   contracts,
		TargetPrice: t.OptionTarget,
		StopPrice:   t.OptionStop,
		StockTarget: t.StockTarget,
	}
}

// Ledger owns the persisted open and closed collections.
type Ledger struct {
	mu      sync.Mutex
	store   Store
	quotes  QuoteProvider
	journal journal.Journal
	now     func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithQuotes sets the option price source used by Update.
func WithQuotes(q QuoteProvider) Option {
	return func(l *Ledger) { l.quotes = q }
}

// WithJournal mirrors every closed trade into a journal. Journal errors
// are reported but never roll back the close.
func WithJournal(j journal.Journal) Option {
	return func(l *Ledger) { l.journal = j }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger builds a ledger over the given store.
func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Open validates and persists a new position.
func (l *Ledger) Open(req OpenRequest) (*Position, error) {
	if req.EntryPrice <= 0 {
		return nil, fmt.Errorf("portfolio: entry price must be positive, got %.2f", req.EntryPrice)
	}
	if req.Contracts <= 0 {
		return nil, fmt.Errorf("portfolio: contracts must be positive, got %d", req.Contracts)
	}
	if req.Ticker == "" {
		return nil, errors.New("portfolio: ticker is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	open, history, err := l.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	costBasis := req.EntryPrice * float64(req.Contracts) * 100
	pos := Position{
		ID:          id.New(),
		Ticker:      req.Ticker,
		Contract:    req.Contract,
		OptionType:  req.OptionType,
		Strike:      req.Strike,
		Expiration:  req.Expiration,
		EntryDate:   l.now(),
		EntryPrice:  req.EntryPrice,
		Contracts:   req.Contracts,
		CostBasis:   costBasis,
		TargetPrice: req.TargetPrice,
		StopPrice:   req.StopPrice,
		StockTarget: req.StockTarget,

		CurrentPrice: req.EntryPrice,
		CurrentValue: costBasis,
		Status:       StatusOpen,
	}

	open = append(open, pos)
	if err := l.store.Save(open, history); err != nil {
		return nil, fmt.Errorf("save portfolio: %w", err)
	}
	return &pos, nil
}

// Close removes the position, realizes P&L against cost basis, and
// appends the closed trade to history.
func (l *Ledger) Close(positionID string, exitPrice float64, exitReason string) (*ClosedTrade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	open, history, err := l.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	idx := -1
	for i, p := range open {
		if p.ID == positionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: id %s (close %s)", ErrNotFound, positionID, exitReason)
	}
	pos := open[idx]
	open = append(open[:idx], open[idx+1:]...)

	exitValue := exitPrice * float64(pos.Contracts) * 100
	pnl := exitValue - pos.CostBasis
	pnlPct := pnl / pos.CostBasis * 100

	result := ResultBreakeven
	switch {
	case pnl > 0:
		result = ResultWin
	case pnl < 0:
		result = ResultLoss
	}

	closed := ClosedTrade{
		ID:         pos.ID,
		Ticker:     pos.Ticker,
		Contract:   pos.Contract,
		OptionType: pos.OptionType,
		EntryDate:  pos.EntryDate,
		EntryPrice: pos.EntryPrice,
		ExitDate:   l.now(),
		ExitPrice:  exitPrice,
		Contracts:  pos.Contracts,
		PnLDollars: round2(pnl),
		PnLPercent: round2(pnlPct),
		Result:     result,
		ExitReason: exitReason,
	}

	history = append(history, closed)
	if err := l.store.Save(open, history); err != nil {
		return nil, fmt.Errorf("save portfolio: %w", err)
	}

	if l.journal != nil {
		if err := l.journal.RecordTrade(journal.TradeRecord{
			TradeID:    closed.ID,
			Ticker:     closed.Ticker,
			Contract:   closed.Contract,
			OptionType: closed.OptionType,
			Contracts:  closed.Contracts,
			EntryPrice: closed.EntryPrice,
			ExitPrice:  closed.ExitPrice,
			EntryDate:  closed.EntryDate,
			ExitDate:   closed.ExitDate,
			PnLDollars: closed.PnLDollars,
			Result:     closed.Result,
			ExitReason: closed.ExitReason,
		}); err != nil {
			return &closed, fmt.Errorf("position closed but journal write failed: %w", err)
		}
	}

	return &closed, nil
}

// Positions returns a snapshot copy of the open set.
func (l *Ledger) Positions() ([]Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	open, _, err := l.store.Load()
	return open, err
}

// History returns a snapshot copy of the closed trades.
func (l *Ledger) History() ([]ClosedTrade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, history, err := l.store.Load()
	return history, err
}
