package indicators

import "math"

// relativeVolume is volume over its trailing mean: 1.0 is a typical
// session, 2.0 is twice the recent average.
func relativeVolume(volumes []float64, window int) []float64 {
	mean := rollingMean(volumes, window)
	out := nanSlice(len(volumes))
	for i := range out {
		if math.IsNaN(mean[i]) || mean[i] == 0 {
			continue
		}
		out[i] = volumes[i] / mean[i]
	}
	return out
}
