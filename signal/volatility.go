package signal

import (
	"fmt"
	"math"

	"github.com/rustyeddy/swing/indicators"
)

// Volatility regimes.
const (
	RegimeOversold   = "oversold"
	RegimeOverbought = "overbought"
	RegimeNormal     = "normal"
	RegimeSqueeze    = "squeeze"
)

// scoreVolatility rates the volatility setup from -10 to +10 and labels
// the regime. The Bollinger position drives the score; a band-width
// contraction below 80% of its own 50-bar mean overrides the regime to
// squeeze regardless of position.
func scoreVolatility(snaps []indicators.Snapshot, price float64) (float64, []string, string) {
	latest := snaps[len(snaps)-1]
	score := 0.0
	var reasons []string
	regime := RegimeNormal

	pos := latest.BBPosition
	switch {
	case pos < 0.1:
		score += 10
		reasons = append(reasons, "Near lower Bollinger Band - potential mean reversion")
		regime = RegimeOversold
	case pos > 0.9:
		score -= 5
		reasons = append(reasons, "Near upper Bollinger Band - extended")
		regime = RegimeOverbought
	default:
		reasons = append(reasons, fmt.Sprintf("Mid-range in Bollinger Bands (%.0f%%)", pos*100))
	}

	if latest.BBWidth < meanRecentWidth(snaps, 50)*0.8 {
		reasons = append(reasons, "Bollinger Band squeeze - big move coming")
		regime = RegimeSqueeze
	}

	atrPct := latest.ATR / price * 100
	reasons = append(reasons, fmt.Sprintf("Daily ATR: $%.2f (%.1f%% of price)", latest.ATR, atrPct))

	return clamp(score, -10, 10), reasons, regime
}

// meanRecentWidth is the trailing mean of Bollinger width over the last
// n snapshots; NaN until the window fills with defined widths.
func meanRecentWidth(snaps []indicators.Snapshot, n int) float64 {
	if len(snaps) < n {
		return math.NaN()
	}
	sum := 0.0
	for _, s := range snaps[len(snaps)-n:] {
		sum += s.BBWidth
	}
	return sum / float64(n)
}
