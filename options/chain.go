// Package options selects a specific option contract for a directional
// signal and derives the full trade plan around it: entry, target,
// stop, sizing, and confidence.
package options

import (
	"math"
	"time"
)

// Option types.
const (
	TypeCall = "call"
	TypePut  = "put"
)

// Candidate is one strike from an externally fetched chain.
type Candidate struct {
	Strike float64 `json:"strike"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
}

// Mid is the bid/ask midpoint.
func (c Candidate) Mid() float64 {
	return (c.Bid + c.Ask) / 2
}

// SpreadPct is the bid/ask spread as a fraction of the ask. A zero ask
// counts as a maximally wide spread.
func (c Candidate) SpreadPct() float64 {
	if c.Ask <= 0 {
		return 1
	}
	return (c.Ask - c.Bid) / c.Ask
}

// Intrinsic is the in-the-money value of the contract at the given
// underlying price.
func (c Candidate) Intrinsic(optType string, underlying float64) float64 {
	if optType == TypePut {
		return math.Max(0, c.Strike-underlying)
	}
	return math.Max(0, underlying-c.Strike)
}

// ChainProvider supplies option chains. Implementations own fetching
// and caching; the selector only filters and scores.
type ChainProvider interface {
	// Expirations lists the available expiration dates for a ticker.
	Expirations(ticker string) ([]time.Time, error)

	// Chain returns the call and put candidates for one expiration.
	Chain(ticker string, expiration time.Time) (calls, puts []Candidate, err error)
}

// NearestExpiration picks the expiration closest to weeksOut weeks from
// now. ok is false when the list is empty.
func NearestExpiration(expirations []time.Time, now time.Time, weeksOut int) (time.Time, bool) {
	if len(expirations) == 0 {
		return time.Time{}, false
	}
	target := now.AddDate(0, 0, 7*weeksOut)

	best := expirations[0]
	bestDiff := absDuration(expirations[0].Sub(target))
	for _, exp := range expirations[1:] {
		if d := absDuration(exp.Sub(target)); d < bestDiff {
			best, bestDiff = exp, d
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
