package portfolio

// Summary aggregates the ledger: open exposure, closed-trade record,
// and combined P&L.
type Summary struct {
	OpenPositions int     `json:"open_positions"`
	TotalCost     float64 `json:"total_cost"`
	TotalValue    float64 `json:"total_value"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`

	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	RealizedPnL float64 `json:"realized_pnl"`

	TotalPnL float64 `json:"total_pnl"`
}

// Summarize computes the portfolio summary from the persisted state.
func (l *Ledger) Summarize() (Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	open, history, err := l.store.Load()
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	s.OpenPositions = len(open)
	for _, p := range open {
		s.TotalCost += p.CostBasis
		s.TotalValue += p.CurrentValue
		s.UnrealizedPnL += p.PnLDollars
	}

	s.TotalTrades = len(history)
	for _, t := range history {
		switch t.Result {
		case ResultWin:
			s.Wins++
		case ResultLoss:
			s.Losses++
		}
		s.RealizedPnL += t.PnLDollars
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	}

	s.TotalPnL = s.RealizedPnL + s.UnrealizedPnL
	return s, nil
}
