// Package indicators computes technical analysis indicators over a bar
// series. Every value is windowed causally: a snapshot at index i only
// sees bars [0..i]. Where a window exceeds the available history the
// field is NaN, never zero — callers must check with math.IsNaN.
package indicators

import (
	"math"

	"github.com/rustyeddy/swing/market"
)

// Snapshot holds every derived field for one bar.
type Snapshot struct {
	SMA20  float64 `json:"sma_20"`
	SMA50  float64 `json:"sma_50"`
	SMA200 float64 `json:"sma_200"`
	EMA12  float64 `json:"ema_12"`
	EMA26  float64 `json:"ema_26"`

	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	MACDHist   float64 `json:"macd_hist"`

	RSI float64 `json:"rsi"`
	ATR float64 `json:"atr"`

	BBMiddle   float64 `json:"bb_middle"`
	BBUpper    float64 `json:"bb_upper"`
	BBLower    float64 `json:"bb_lower"`
	BBWidth    float64 `json:"bb_width"`
	BBPosition float64 `json:"bb_position"`

	RelVolume float64 `json:"rel_volume"`
	ADX       float64 `json:"adx"`

	ROC5  float64 `json:"roc_5"`
	ROC20 float64 `json:"roc_20"`
}

// Compute derives one Snapshot per bar. It is total: any series length
// is accepted and undefined windows surface as NaN fields.
func Compute(s market.Series) []Snapshot {
	n := len(s)
	out := make([]Snapshot, n)
	if n == 0 {
		return out
	}

	closes := s.Closes()
	volumes := s.Volumes()

	sma20 := rollingMean(closes, 20)
	sma50 := rollingMean(closes, 50)
	sma200 := rollingMean(closes, 200)
	ema12 := ema(closes, 12)
	ema26 := ema(closes, 26)

	macd := make([]float64, n)
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	macdSignal := ema(macd, 9)

	rsi := rsi14(closes)
	atr := atrSeries(s, 14)

	bbStd := rollingStd(closes, 20)
	adx := adxSeries(s, 14)
	relVol := relativeVolume(volumes, 20)

	for i := 0; i < n; i++ {
		snap := &out[i]
		snap.SMA20 = sma20[i]
		snap.SMA50 = sma50[i]
		snap.SMA200 = sma200[i]
		snap.EMA12 = ema12[i]
		snap.EMA26 = ema26[i]

		snap.MACD = macd[i]
		snap.MACDSignal = macdSignal[i]
		snap.MACDHist = macd[i] - macdSignal[i]

		snap.RSI = rsi[i]
		snap.ATR = atr[i]

		mid := sma20[i]
		snap.BBMiddle = mid
		snap.BBUpper = mid + 2*bbStd[i]
		snap.BBLower = mid - 2*bbStd[i]
		snap.BBWidth = (snap.BBUpper - snap.BBLower) / mid
		band := snap.BBUpper - snap.BBLower
		if band == 0 {
			snap.BBPosition = math.NaN()
		} else {
			snap.BBPosition = (closes[i] - snap.BBLower) / band
		}

		snap.RelVolume = relVol[i]
		snap.ADX = adx[i]

		snap.ROC5 = rateOfChange(closes, i, 5)
		snap.ROC20 = rateOfChange(closes, i, 20)
	}

	return out
}
