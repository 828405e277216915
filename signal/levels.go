package signal

import "github.com/rustyeddy/swing/market"

// levelWindow is how many recent bars the locator scans, and
// levelFlank is how many bars on each side a swing point must beat.
const (
	levelWindow = 60
	levelFlank  = 2
)

// Levels are the nearest support/resistance prices around the current
// price. Resistance1 < Resistance2 by construction; Support2 sits
// somewhere below Support1 but no ordering beyond that is guaranteed.
type Levels struct {
	Support1    float64 `json:"support_1"`
	Support2    float64 `json:"support_2"`
	Resistance1 float64 `json:"resistance_1"`
	Resistance2 float64 `json:"resistance_2"`
}

// FindLevels locates swing highs/lows in the recent window and picks
// the nearest levels on each side of price. When no swing point exists
// on a side it falls back to a fixed percentage of price, so the result
// is always usable as an entry or target anchor.
func FindLevels(s market.Series, currentPrice float64) Levels {
	recent := s.Tail(levelWindow)

	var highs, lows []float64
	for i := levelFlank; i < len(recent)-levelFlank; i++ {
		if isSwingHigh(recent, i) {
			highs = append(highs, recent[i].High)
		}
		if isSwingLow(recent, i) {
			lows = append(lows, recent[i].Low)
		}
	}

	// Supports: swing lows below price, nearest first.
	supports := filterSorted(lows, func(v float64) bool { return v < currentPrice }, true)
	var lv Levels
	if len(supports) > 0 {
		lv.Support1 = supports[0]
	} else {
		lv.Support1 = currentPrice * 0.95
	}
	if len(supports) > 1 {
		lv.Support2 = supports[1]
	} else {
		lv.Support2 = lv.Support1 * 0.97
	}

	// Resistances: swing highs above price, nearest first.
	resistances := filterSorted(highs, func(v float64) bool { return v > currentPrice }, false)
	if len(resistances) > 0 {
		lv.Resistance1 = resistances[0]
	} else {
		lv.Resistance1 = currentPrice * 1.05
	}
	if len(resistances) > 1 {
		lv.Resistance2 = resistances[1]
	} else {
		lv.Resistance2 = lv.Resistance1 * 1.03
	}

	return lv
}

func isSwingHigh(s market.Series, i int) bool {
	h := s[i].High
	return h > s[i-1].High && h > s[i-2].High && h > s[i+1].High && h > s[i+2].High
}

func isSwingLow(s market.Series, i int) bool {
	l := s[i].Low
	return l < s[i-1].Low && l < s[i-2].Low && l < s[i+1].Low && l < s[i+2].Low
}

func filterSorted(vals []float64, keep func(float64) bool, descending bool) []float64 {
	var out []float64
	for _, v := range vals {
		if keep(v) {
			out = append(out, v)
		}
	}
	// insertion sort: the candidate lists are tiny
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			less := out[j] < out[j-1]
			if descending {
				less = out[j] > out[j-1]
			}
			if !less {
				break
			}
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
