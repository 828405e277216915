package options

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/swing/market"
	"github.com/rustyeddy/swing/signal"
)

// signalLookbackBars is roughly one year of daily history, enough for
// the 200-day average to be defined.
const signalLookbackBars = 252

// minTradeRR filters out marginal trades from the batch scan.
const minTradeRR = 1.5

// Engine wires the signal composer and the contract selector to their
// data providers and runs them across a watchlist.
type Engine struct {
	Series   market.SeriesProvider
	Context  market.ContextProvider
	Selector *Selector
	Log      zerolog.Logger

	// MinRR overrides the batch-scan risk/reward floor; zero means the
	// 1.5 default.
	MinRR float64
}

func (e *Engine) minRR() float64 {
	if e.MinRR > 0 {
		return e.MinRR
	}
	return minTradeRR
}

// GenerateSignal evaluates one ticker. Macro-context failures fall back
// to the default risk-on context rather than blocking the evaluation.
func (e *Engine) GenerateSignal(ticker string) (*signal.Score, error) {
	series, err := e.Series.Series(ticker, signalLookbackBars)
	if err != nil {
		return nil, fmt.Errorf("price history for %s: %w", ticker, err)
	}

	ctx := market.DefaultContext()
	if e.Context != nil {
		if fetched, err := e.Context.Context(); err == nil {
			ctx = fetched
		} else {
			e.Log.Warn().Err(err).Msg("market context unavailable, assuming risk-on")
		}
	}

	return signal.Compose(ticker, series, ctx)
}

// GenerateTrades scans the watchlist and returns the option trades
// worth taking: calls on bullish setups aiming at the signal's first
// target, puts on bearish ones aiming 8% lower. One ticker failing
// never aborts the rest of the batch.
func (e *Engine) GenerateTrades(tickers []string) []*Trade {
	var trades []*Trade

	for _, ticker := range tickers {
		trade, err := e.tradeFor(ticker)
		if err != nil {
			e.Log.Warn().Str("ticker", ticker).Err(err).Msg("skipping ticker")
			continue
		}
		if trade == nil {
			continue
		}
		if trade.RiskReward < e.minRR() {
			e.Log.Debug().Str("ticker", ticker).Float64("rr", trade.RiskReward).Msg("trade below R:R floor")
			continue
		}
		e.Log.Info().
			Str("ticker", ticker).
			Str("contract", trade.Contract).
			Str("confidence", trade.Confidence).
			Float64("rr", trade.RiskReward).
			Msg("trade found")
		trades = append(trades, trade)
	}

	return trades
}

func (e *Engine) tradeFor(ticker string) (*Trade, error) {
	series, err := e.Series.Series(ticker, signalLookbackBars)
	if err != nil {
		return nil, fmt.Errorf("price history for %s: %w", ticker, err)
	}
	last, ok := series.Last()
	if !ok || last.Close <= 0 {
		return nil, fmt.Errorf("no spot price for %s", ticker)
	}
	spot := last.Close

	ctx := market.DefaultContext()
	if e.Context != nil {
		if fetched, err := e.Context.Context(); err == nil {
			ctx = fetched
		}
	}

	sig, err := signal.Compose(ticker, series, ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case sig.Score >= 20 && sig.Bullish():
		return e.Selector.FindBestCall(ticker, sig, spot, sig.Target1)
	case sig.Score <= -20:
		return e.Selector.FindBestPut(ticker, sig, spot, spot*0.92)
	default:
		return nil, nil
	}
}
