package indicators

import (
	"math"

	"github.com/rustyeddy/swing/market"
)

// adxSeries is the Average Directional Index over rolling simple means:
// +DM/-DM clamped to their own direction, DI normalized by ATR,
// DX = 100*|+DI - -DI|/(+DI + -DI), ADX = rolling mean of DX.
//
// With period 14 the first defined value lands at index 27: one bar for
// the directional-movement diff, 14 to fill the DI windows, 14 more to
// fill the DX window.
func adxSeries(s market.Series, period int) []float64 {
	n := len(s)

	plusDM := nanSlice(n)
	minusDM := nanSlice(n)
	for i := 1; i < n; i++ {
		plusDM[i] = math.Max(s[i].High-s[i-1].High, 0)
		minusDM[i] = math.Max(s[i-1].Low-s[i].Low, 0)
	}

	atr := atrSeries(s, period)
	plusSmooth := rollingMean(plusDM, period)
	minusSmooth := rollingMean(minusDM, period)

	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(plusSmooth[i]) || math.IsNaN(minusSmooth[i]) || math.IsNaN(atr[i]) || atr[i] == 0 {
			continue
		}
		plusDI := 100 * plusSmooth[i] / atr[i]
		minusDI := 100 * minusSmooth[i] / atr[i]
		den := plusDI + minusDI
		if den == 0 {
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / den
	}

	return rollingMean(dx, period)
}
