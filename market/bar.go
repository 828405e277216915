// Package market defines the price data types consumed by the analysis
// engine. Fetching is left to providers; everything here is plain data.
package market

import "time"

// Bar represents one trading period of OHLCV data
type Bar struct {
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
	Time   time.Time `json:"time"`
}

// Series is a chronological run of bars over a lookback window.
type Series []Bar

// MinBarsForTrend is how much history the slowest moving average needs.
// Shorter series still compute, but the 200-day fields come back NaN.
const MinBarsForTrend = 200

// Last returns the most recent bar. ok is false for an empty series.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the last n bars (or the whole series if shorter).
func (s Series) Tail(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Closes extracts the close column.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume column.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}
