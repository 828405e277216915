package indicators

import "math"

// rollingMean is a trailing simple mean. Positions before the window
// fills, or windows containing NaN, yield NaN.
func rollingMean(vals []float64, window int) []float64 {
	out := nanSlice(len(vals))
	if window <= 0 || len(vals) < window {
		return out
	}
	for i := window - 1; i < len(vals); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += vals[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// ema computes the exponential moving average seeded by the series
// itself: each value is the decay-weighted mean of the full prefix, so
// the output is defined from the first bar onward.
func ema(vals []float64, span int) []float64 {
	out := nanSlice(len(vals))
	if span <= 0 || len(vals) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	decay := 1 - alpha

	var num, den float64
	for i, v := range vals {
		num = v + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}

// rollingStd is the trailing sample standard deviation (n-1 divisor).
func rollingStd(vals []float64, window int) []float64 {
	out := nanSlice(len(vals))
	if window <= 1 || len(vals) < window {
		return out
	}
	for i := window - 1; i < len(vals); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += vals[j]
		}
		mean := sum / float64(window)

		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := vals[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// rateOfChange is the percent change of vals[i] over vals[i-n].
func rateOfChange(vals []float64, i, n int) float64 {
	if i < n || vals[i-n] == 0 {
		return math.NaN()
	}
	return (vals[i]/vals[i-n] - 1) * 100
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
