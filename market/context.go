package market

// Context is a coarse macro gate: benchmark direction plus a volatility
// index level. The signal composer only reads RiskOn.
type Context struct {
	BenchmarkChangePct float64 `json:"benchmark_change_pct"`
	VolatilityIndex    float64 `json:"volatility_index"`
	RiskOn             bool    `json:"risk_on"`
}

// DefaultContext is the fallback when the context provider is
// unavailable: assume a calm, risk-on tape rather than blocking every
// signal on a data outage.
func DefaultContext() Context {
	return Context{
		BenchmarkChangePct: 0,
		VolatilityIndex:    20,
		RiskOn:             true,
	}
}

// Classify derives RiskOn from the raw inputs: volatility below 20 and
// the benchmark not down more than half a percent.
func Classify(benchmarkChangePct, volatilityIndex float64) Context {
	return Context{
		BenchmarkChangePct: benchmarkChangePct,
		VolatilityIndex:    volatilityIndex,
		RiskOn:             volatilityIndex < 20 && benchmarkChangePct > -0.5,
	}
}

// SeriesProvider supplies price history for a ticker. Implementations
// own all network concerns; the engine never fetches.
type SeriesProvider interface {
	Series(ticker string, bars int) (Series, error)
}

// ContextProvider supplies the macro context. Callers should fall back
// to DefaultContext on error.
type ContextProvider interface {
	Context() (Context, error)
}
