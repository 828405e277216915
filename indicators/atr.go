package indicators

import (
	"math"

	"github.com/rustyeddy/swing/market"
)

// trueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(cur, prev market.Bar) float64 {
	hl := cur.High - cur.Low
	hc := math.Abs(cur.High - prev.Close)
	lc := math.Abs(cur.Low - prev.Close)
	return math.Max(hl, math.Max(hc, lc))
}

// atrSeries is the trailing simple mean of true range. The first bar
// has no previous close, so its true range degrades to high-low.
func atrSeries(s market.Series, period int) []float64 {
	n := len(s)
	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			tr[i] = s[i].High - s[i].Low
			continue
		}
		tr[i] = trueRange(s[i], s[i-1])
	}
	return rollingMean(tr, period)
}
