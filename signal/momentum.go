package signal

import (
	"fmt"

	"github.com/rustyeddy/swing/indicators"
)

// scoreMomentum rates momentum from -30 to +30: RSI bands, MACD against
// its signal line, and the histogram's direction versus the prior bar.
func scoreMomentum(latest, prev indicators.Snapshot) (float64, []string) {
	score := 0.0
	var reasons []string

	rsi := latest.RSI
	switch {
	case rsi < 30:
		score += 15
		reasons = append(reasons, fmt.Sprintf("RSI oversold (%.1f) - potential bounce", rsi))
	case rsi > 70:
		score -= 15
		reasons = append(reasons, fmt.Sprintf("RSI overbought (%.1f) - potential pullback", rsi))
	case rsi >= 40 && rsi <= 60:
		reasons = append(reasons, fmt.Sprintf("RSI neutral (%.1f)", rsi))
	case rsi > 50:
		score += 5
		reasons = append(reasons, fmt.Sprintf("RSI bullish (%.1f)", rsi))
	default:
		score -= 5
		reasons = append(reasons, fmt.Sprintf("RSI bearish (%.1f)", rsi))
	}

	if latest.MACD > latest.MACDSignal {
		score += 10
		reasons = append(reasons, "MACD above signal (bullish)")
	} else {
		score -= 10
		reasons = append(reasons, "MACD below signal (bearish)")
	}

	if latest.MACDHist > prev.MACDHist {
		score += 5
		reasons = append(reasons, "MACD histogram increasing")
	} else {
		score -= 5
		reasons = append(reasons, "MACD histogram decreasing")
	}

	return clamp(score, -30, 30), reasons
}
