package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/swing/market"
)

// flatSeries builds n bars pinned at price with a 1-point range.
func flatSeries(n int, price float64) market.Series {
	s := make(market.Series, n)
	for i := range s {
		s[i] = market.Bar{
			Open: price, Close: price,
			High: price + 0.5, Low: price - 0.5,
			Volume: 1000,
		}
	}
	return s
}

func TestFindLevelsSwingPoints(t *testing.T) {
	s := flatSeries(60, 100)
	// Two swing lows and two swing highs inside the window.
	s[10].Low = 90
	s[30].Low = 94
	s[20].High = 110
	s[40].High = 106

	lv := FindLevels(s, 100)

	assert.InDelta(t, 94.0, lv.Support1, 1e-9) // nearest below
	assert.InDelta(t, 90.0, lv.Support2, 1e-9)
	assert.InDelta(t, 106.0, lv.Resistance1, 1e-9) // nearest above
	assert.InDelta(t, 110.0, lv.Resistance2, 1e-9)
}

func TestFindLevelsFallbacks(t *testing.T) {
	// No swing points at all: every level falls back to a percentage.
	lv := FindLevels(flatSeries(60, 100), 100)

	assert.InDelta(t, 95.0, lv.Support1, 1e-9)
	assert.InDelta(t, 95.0*0.97, lv.Support2, 1e-9)
	assert.InDelta(t, 105.0, lv.Resistance1, 1e-9)
	assert.InDelta(t, 105.0*1.03, lv.Resistance2, 1e-9)
}

func TestFindLevelsSingleSwingEachSide(t *testing.T) {
	s := flatSeries(60, 100)
	s[15].Low = 92
	s[35].High = 107

	lv := FindLevels(s, 100)

	assert.InDelta(t, 92.0, lv.Support1, 1e-9)
	assert.InDelta(t, 92.0*0.97, lv.Support2, 1e-9)
	assert.InDelta(t, 107.0, lv.Resistance1, 1e-9)
	assert.InDelta(t, 107.0*1.03, lv.Resistance2, 1e-9)
}

func TestFindLevelsBoundaryBarsExcluded(t *testing.T) {
	s := flatSeries(60, 100)
	// Extremes in the 2-bar boundary zones must be ignored.
	s[0].Low = 80
	s[1].Low = 81
	s[58].High = 120
	s[59].High = 121

	lv := FindLevels(s, 100)

	assert.InDelta(t, 95.0, lv.Support1, 1e-9)
	assert.InDelta(t, 105.0, lv.Resistance1, 1e-9)
}

func TestFindLevelsResistanceOrdering(t *testing.T) {
	s := flatSeries(60, 100)
	s[12].High = 115
	s[25].High = 103
	s[45].High = 108

	lv := FindLevels(s, 100)

	assert.InDelta(t, 103.0, lv.Resistance1, 1e-9)
	assert.InDelta(t, 108.0, lv.Resistance2, 1e-9)
	assert.Less(t, lv.Resistance1, lv.Resistance2)
}

func TestFindLevelsUsesRecentWindowOnly(t *testing.T) {
	s := flatSeries(120, 100)
	// Swing low outside the 60-bar window is invisible.
	s[10].Low = 85
	s[90].Low = 93

	lv := FindLevels(s, 100)

	assert.InDelta(t, 93.0, lv.Support1, 1e-9)
	assert.InDelta(t, 93.0*0.97, lv.Support2, 1e-9)
}
