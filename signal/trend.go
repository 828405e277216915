package signal

import (
	"fmt"

	"github.com/rustyeddy/swing/indicators"
)

// scoreTrend rates the trend from -50 to +50: price against each moving
// average, an alignment bonus, then an ADX scaling for trend strength.
// NaN moving averages (short history) compare false and land on the
// bearish side of each check, same as an unknown trend would.
func scoreTrend(latest indicators.Snapshot, price float64) (float64, []string) {
	score := 0.0
	var reasons []string

	if price > latest.SMA20 {
		score += 10
		reasons = append(reasons, "Price above 20-day MA")
	} else {
		score -= 10
		reasons = append(reasons, "Price below 20-day MA")
	}

	if price > latest.SMA50 {
		score += 10
		reasons = append(reasons, "Price above 50-day MA")
	} else {
		score -= 10
		reasons = append(reasons, "Price below 50-day MA")
	}

	if price > latest.SMA200 {
		score += 10
		reasons = append(reasons, "Price above 200-day MA (long-term uptrend)")
	} else {
		score -= 10
		reasons = append(reasons, "Price below 200-day MA (long-term downtrend)")
	}

	if latest.SMA20 > latest.SMA50 && latest.SMA50 > latest.SMA200 {
		score += 15
		reasons = append(reasons, "MAs aligned bullish (20 > 50 > 200)")
	} else if latest.SMA20 < latest.SMA50 && latest.SMA50 < latest.SMA200 {
		score -= 15
		reasons = append(reasons, "MAs aligned bearish (20 < 50 < 200)")
	}

	// Strong trends amplify the score, choppy tape dampens it.
	if latest.ADX > 25 {
		reasons = append(reasons, fmt.Sprintf("Strong trend (ADX=%.1f)", latest.ADX))
		score *= 1.2
	} else if latest.ADX < 20 {
		reasons = append(reasons, fmt.Sprintf("Weak/choppy trend (ADX=%.1f)", latest.ADX))
		score *= 0.7
	}

	return clamp(score, -50, 50), reasons
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
