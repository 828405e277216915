// Package signal turns an indicator series into a composite trading
// signal: four factor scores, a macro adjustment, support/resistance
// levels, and ATR-derived stops and targets.
package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/swing/indicators"
	"github.com/rustyeddy/swing/market"
)

// Signal categories. Every evaluation terminates in exactly one.
const (
	BuyNow      = "BUY_NOW"
	BuyPullback = "BUY_PULLBACK"
	Sell        = "SELL"
	Wait        = "WAIT"
)

// minBuyNowRR is the floor below which an immediate buy is downgraded
// to a pullback entry. No Score with Signal == BuyNow may carry a
// RiskReward under this value.
const minBuyNowRR = 1.8

// ErrInsufficientData means the series is too short to evaluate at all.
var ErrInsufficientData = errors.New("signal: insufficient price history")

// Score is one complete signal evaluation. It is never mutated after
// Compose returns it.
type Score struct {
	Ticker string  `json:"ticker"`
	Score  float64 `json:"score"` // -100 strong sell .. +100 strong buy

	TrendScore      float64 `json:"trend_score"`
	MomentumScore   float64 `json:"momentum_score"`
	VolumeScore     float64 `json:"volume_score"`
	VolatilityScore float64 `json:"volatility_score"`

	Signal     string  `json:"signal"`
	EntryType  string  `json:"entry_type"`
	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
	Target1    float64 `json:"target_1"`
	Target2    float64 `json:"target_2"`
	RiskReward float64 `json:"risk_reward"`

	Levels Levels `json:"levels"`

	Reasons  []string `json:"reasons"`
	Warnings []string `json:"warnings"`
}

// Bullish reports whether the signal calls for long exposure.
func (sc *Score) Bullish() bool {
	return sc.Signal == BuyNow || sc.Signal == BuyPullback
}

// Compose evaluates one ticker from already-fetched history and macro
// context. It is a pure function: identical inputs always produce an
// identical Score, and nothing persists between calls.
func Compose(ticker string, s market.Series, ctx market.Context) (*Score, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: got %d bars for %s", ErrInsufficientData, len(s), ticker)
	}

	snaps := indicators.Compute(s)
	latest := snaps[len(snaps)-1]
	prev := snaps[len(snaps)-2]
	price := s[len(s)-1].Close
	prevClose := s[len(s)-2].Close
	atr := latest.ATR

	trendScore, trendReasons := scoreTrend(latest, price)
	momentumScore, momentumReasons := scoreMomentum(latest, prev)
	volumeScore, volumeReasons := scoreVolume(latest, price, prevClose)
	volatilityScore, volatilityReasons, regime := scoreVolatility(snaps, price)

	levels := FindLevels(s, price)

	total := trendScore + momentumScore + volumeScore + volatilityScore
	if !ctx.RiskOn {
		total -= 10
		trendReasons = append(trendReasons, fmt.Sprintf("Risk-off market (VIX=%.1f)", ctx.VolatilityIndex))
	}

	reasons := make([]string, 0, 12)
	reasons = append(reasons, trendReasons...)
	reasons = append(reasons, momentumReasons...)
	reasons = append(reasons, volumeReasons...)
	reasons = append(reasons, volatilityReasons...)
	var warnings []string

	var sig, entryType string
	var entry float64

	switch {
	case total >= 40:
		if price < latest.SMA20 {
			sig, entryType, entry = BuyNow, "pullback", price
			reasons = append(reasons, "Strong bullish setup at pullback - buy now")
		} else {
			sig, entryType, entry = BuyPullback, "pullback", levels.Support1
			reasons = append(reasons, fmt.Sprintf("Wait for pullback to $%.2f", entry))
		}
	case total >= 20:
		if regime == RegimeOversold {
			sig, entryType, entry = BuyNow, "mean_reversion", price
			reasons = append(reasons, "Oversold bounce setup")
		} else {
			sig, entryType, entry = BuyPullback, "pullback", levels.Support1
			reasons = append(reasons, fmt.Sprintf("Moderately bullish - wait for $%.2f", entry))
		}
	case total <= -40:
		sig, entryType, entry = Sell, "breakdown", price
		reasons = append(reasons, "Strong bearish - avoid or short")
	case total <= -20:
		sig, entryType, entry = Wait, "none", levels.Support2
		warnings = append(warnings, "Bearish bias - wait for better setup")
	default:
		sig, entryType, entry = Wait, "none", levels.Support1
		warnings = append(warnings, "No clear edge - patience")
	}

	bullish := sig == BuyNow || sig == BuyPullback
	stop, target1, target2 := bracketLevels(bullish, entry, price, atr)
	rr := riskReward(entry, stop, target1)

	if downgraded, warning := downgradeBuyNow(sig, rr); downgraded {
		sig = BuyPullback
		warnings = append(warnings, warning)
	}

	return &Score{
		Ticker:          ticker,
		Score:           total,
		TrendScore:      trendScore,
		MomentumScore:   momentumScore,
		VolumeScore:     volumeScore,
		VolatilityScore: volatilityScore,
		Signal:          sig,
		EntryType:       entryType,
		EntryPrice:      round2(entry),
		StopLoss:        round2(stop),
		Target1:         round2(target1),
		Target2:         round2(target2),
		RiskReward:      round2(rr),
		Levels:          levels,
		Reasons:         reasons,
		Warnings:        warnings,
	}, nil
}

// bracketLevels derives the stop and two targets from volatility:
// bullish entries bracket the entry price, everything else brackets the
// current price with the same multiples mirrored downward.
func bracketLevels(bullish bool, entry, price, atr float64) (stop, target1, target2 float64) {
	if bullish {
		return entry - atr*1.5, entry + atr*3, entry + atr*4.5
	}
	return price + atr*1.5, price - atr*3, price - atr*4.5
}

// riskReward is reward over risk for the first target; zero risk
// yields 0.
func riskReward(entry, stop, target1 float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(target1-entry) / risk
}

// downgradeBuyNow enforces the immediate-entry quality floor: a BuyNow
// whose risk/reward falls under minBuyNowRR becomes a pullback entry.
func downgradeBuyNow(sig string, rr float64) (bool, string) {
	// NaN ratios (undefined ATR) are left alone: there is no evidence
	// the entry is bad, only that volatility is unknown.
	if sig != BuyNow || !(rr < minBuyNowRR) {
		return false, ""
	}
	return true, fmt.Sprintf("R:R only %.1f:1 - wait for pullback to improve entry", rr)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
