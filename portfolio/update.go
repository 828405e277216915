package portfolio

import (
	"fmt"
	"math"
	"time"
)

// Alert types raised by Update. Detection only — closing remains the
// caller's decision.
const (
	AlertTargetHit    = "TARGET_HIT"
	AlertStopHit      = "STOP_HIT"
	AlertExpiringSoon = "EXPIRING_SOON"
)

// expiryWarnDays is how close to expiration a position can get before
// Update starts flagging it.
const expiryWarnDays = 5

// Alert flags an open position that wants attention.
type Alert struct {
	Position Position `json:"position"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
}

// QuoteProvider supplies current option and stock prices. OptionMid
// failures are expected (stale strikes, closed markets); Update falls
// back to an intrinsic-value estimate from the spot price.
type QuoteProvider interface {
	OptionMid(ticker string, expiration time.Time, strike float64, optType string) (float64, error)
	SpotPrice(ticker string) (float64, error)
}

// Update revalues every open position and reports exit conditions
// without closing anything. Only valuation fields change, so calling it
// twice against unchanged quotes is a no-op the second time.
func (l *Ledger) Update() ([]Alert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	open, history, err := l.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	var alerts []Alert
	now := l.now()

	for i := range open {
		pos := &open[i]

		price := l.currentPrice(pos)
		pos.CurrentPrice = round2(price)
		pos.CurrentValue = round2(price * float64(pos.Contracts) * 100)
		pos.PnLDollars = round2(pos.CurrentValue - pos.CostBasis)
		pos.PnLPercent = round2(pos.PnLDollars / pos.CostBasis * 100)

		if price >= pos.TargetPrice {
			alerts = append(alerts, Alert{
				Position: *pos,
				Type:     AlertTargetHit,
				Message: fmt.Sprintf("TARGET HIT: %s at $%.2f (target was $%.2f)",
					pos.Contract, price, pos.TargetPrice),
			})
		} else if price <= pos.StopPrice {
			alerts = append(alerts, Alert{
				Position: *pos,
				Type:     AlertStopHit,
				Message: fmt.Sprintf("STOP HIT: %s at $%.2f (stop was $%.2f)",
					pos.Contract, price, pos.StopPrice),
			})
		}

		daysToExp := int(pos.Expiration.Sub(now).Hours() / 24)
		if daysToExp <= expiryWarnDays {
			alerts = append(alerts, Alert{
				Position: *pos,
				Type:     AlertExpiringSoon,
				Message: fmt.Sprintf("EXPIRING: %s expires in %d days - consider closing",
					pos.Contract, daysToExp),
			})
		}
	}

	if err := l.store.Save(open, history); err != nil {
		return nil, fmt.Errorf("save portfolio: %w", err)
	}
	return alerts, nil
}

// currentPrice returns the option mid, or an intrinsic-value estimate
// floored well above zero, or the last known price when no quote of any
// kind is available.
func (l *Ledger) currentPrice(pos *Position) float64 {
	if l.quotes == nil {
		return pos.CurrentPrice
	}

	if mid, err := l.quotes.OptionMid(pos.Ticker, pos.Expiration, pos.Strike, pos.OptionType); err == nil {
		return mid
	}

	spot, err := l.quotes.SpotPrice(pos.Ticker)
	if err != nil {
		return pos.CurrentPrice
	}

	var intrinsic float64
	if pos.OptionType == "put" {
		intrinsic = math.Max(0, pos.Strike-spot)
	} else {
		intrinsic = math.Max(0, spot-pos.Strike)
	}

	// Haircut the intrinsic for spread, but never let the estimate
	// collapse to zero while the position still has entry value.
	return math.Max(intrinsic*0.9, pos.EntryPrice*0.1)
}
