package indicators

import "math"

// rsi14 is the 14-bar Relative Strength Index over simple rolling means
// of gains and losses. The first bar has no price change and counts as
// a zero gain and zero loss.
func rsi14(closes []float64) []float64 {
	const window = 14

	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, window)
	avgLoss := rollingMean(losses, window)

	out := nanSlice(n)
	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case math.IsNaN(g) || math.IsNaN(l):
			// window not filled
		case g == 0 && l == 0:
			// flat series: RS is 0/0, undefined
		case l == 0:
			out[i] = 100
		default:
			rs := g / l
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}
