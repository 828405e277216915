package options

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/swing/risk"
	"github.com/rustyeddy/swing/signal"
)

// Selection constants: swing trades target roughly three weeks of
// runway and never ride into the final week before expiry.
const (
	targetWeeksOut = 3
	expiryBufferD  = 5
	maxHoldCapDays = 14
)

// Selector picks the single best contract from a chain for a
// directional thesis. A nil trade with a nil error means no contract
// qualified; errors are reserved for provider failures.
type Selector struct {
	Chains ChainProvider

	// WeeksOut overrides the expiration horizon; zero means the
	// three-week default.
	WeeksOut int

	Now func() time.Time
}

func (s *Selector) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Selector) weeksOut() int {
	if s.WeeksOut > 0 {
		return s.WeeksOut
	}
	return targetWeeksOut
}

// FindBestCall selects a call for a bullish signal targeting
// targetPrice on the underlying.
func (s *Selector) FindBestCall(ticker string, sig *signal.Score, stockPrice, targetPrice float64) (*Trade, error) {
	calls, _, expiration, err := s.fetchChain(ticker)
	if err != nil {
		return nil, err
	}
	if len(calls) == 0 {
		return nil, nil
	}

	// Slightly ITM through slightly OTM: leverage without going deep
	// out of the money.
	cands := filterCandidates(calls, stockPrice*0.98, stockPrice*1.05, 0.10, true)
	if len(cands) == 0 {
		cands = filterCandidates(calls, stockPrice*0.95, stockPrice*1.10, 0.05, false)
	}
	if len(cands) == 0 {
		return nil, nil
	}

	best := pickBest(cands, func(c Candidate) float64 {
		mid := c.Mid()
		rr := 0.0
		if mid > 0 {
			rr = (c.Intrinsic(TypeCall, targetPrice) - mid) / mid
		}
		score := rr * 10
		score -= c.SpreadPct() * 20
		score -= math.Abs(c.Strike-stockPrice) / stockPrice * 10
		return score
	})

	dte := daysUntil(s.now(), expiration)
	entry := round2(best.Mid())
	optionTarget := round2(best.Intrinsic(TypeCall, targetPrice) * 0.85)
	optionStop := round2(entry * 0.5)

	rr := 0.0
	if entry > 0 {
		rr = round1((optionTarget - entry) / entry)
	}

	entryTrigger := "Enter now at limit price"
	if sig.Signal != signal.BuyNow {
		entryTrigger = fmt.Sprintf("Enter when stock pulls back to $%.2f", sig.EntryPrice)
	}

	return &Trade{
		Ticker:            ticker,
		Direction:         Bullish,
		Strategy:          StrategyBuyCall,
		Contract:          ContractName(ticker, expiration, best.Strike, TypeCall),
		Strike:            best.Strike,
		Expiration:        expiration,
		OptionType:        TypeCall,
		CurrentStockPrice: stockPrice,
		OptionBid:         best.Bid,
		OptionAsk:         best.Ask,
		EntryPrice:        entry,
		StockTarget:       targetPrice,
		OptionTarget:      optionTarget,
		OptionStop:        optionStop,
		RiskDollars:       round2(entry * 100),
		RewardDollars:     round2((optionTarget - entry) * 100),
		RiskReward:        rr,
		ContractsFor500:   risk.ContractsForBudget(500, entry),
		ContractsFor1000:  risk.ContractsForBudget(1000, entry),
		EntryTrigger:      entryTrigger,
		ExitTrigger:       fmt.Sprintf("Exit when option hits $%.2f OR stock hits $%.2f", optionTarget, targetPrice),
		MaxHoldDays:       maxHoldDays(dte),
		Confidence:        risk.Confidence(rr, sig.Score),
		Reason:            fmt.Sprintf("Score %+.0f, R:R %.1f:1, %d DTE", sig.Score, rr, dte),
	}, nil
}

// FindBestPut selects a put for a bearish thesis targeting targetPrice
// on the underlying.
func (s *Selector) FindBestPut(ticker string, sig *signal.Score, stockPrice, targetPrice float64) (*Trade, error) {
	_, puts, expiration, err := s.fetchChain(ticker)
	if err != nil {
		return nil, err
	}
	if len(puts) == 0 {
		return nil, nil
	}

	cands := filterCandidates(puts, stockPrice*0.95, stockPrice*1.02, 0.10, false)
	if len(cands) == 0 {
		cands = filterCandidates(puts, stockPrice*0.90, stockPrice*1.05, 0.05, false)
	}
	if len(cands) == 0 {
		return nil, nil
	}

	best := pickBest(cands, func(c Candidate) float64 {
		mid := c.Mid()
		rr := 0.0
		if mid > 0 {
			rr = (c.Intrinsic(TypePut, targetPrice) - mid) / mid
		}
		return rr*10 - c.SpreadPct()*20
	})

	dte := daysUntil(s.now(), expiration)
	entry := round2(best.Mid())
	optionTarget := round2(best.Intrinsic(TypePut, targetPrice) * 0.85)
	optionStop := round2(entry * 0.5)

	rr := 0.0
	if entry > 0 {
		rr = round1((optionTarget - entry) / entry)
	}

	return &Trade{
		Ticker:            ticker,
		Direction:         Bearish,
		Strategy:          StrategyBuyPut,
		Contract:          ContractName(ticker, expiration, best.Strike, TypePut),
		Strike:            best.Strike,
		Expiration:        expiration,
		OptionType:        TypePut,
		CurrentStockPrice: stockPrice,
		OptionBid:         best.Bid,
		OptionAsk:         best.Ask,
		EntryPrice:        entry,
		StockTarget:       targetPrice,
		OptionTarget:      optionTarget,
		OptionStop:        optionStop,
		RiskDollars:       round2(entry * 100),
		RewardDollars:     round2((optionTarget - entry) * 100),
		RiskReward:        rr,
		ContractsFor500:   risk.ContractsForBudget(500, entry),
		ContractsFor1000:  risk.ContractsForBudget(1000, entry),
		EntryTrigger:      "Enter on bounce to resistance",
		ExitTrigger:       fmt.Sprintf("Exit when option hits $%.2f", optionTarget),
		MaxHoldDays:       maxHoldDays(dte),
		Confidence:        risk.ConfidenceByRR(rr),
		Reason:            fmt.Sprintf("Bearish signal, R:R %.1f:1", rr),
	}, nil
}

func (s *Selector) fetchChain(ticker string) (calls, puts []Candidate, expiration time.Time, err error) {
	expirations, err := s.Chains.Expirations(ticker)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("expirations for %s: %w", ticker, err)
	}
	expiration, ok := NearestExpiration(expirations, s.now(), s.weeksOut())
	if !ok {
		return nil, nil, time.Time{}, nil
	}
	calls, puts, err = s.Chains.Chain(ticker, expiration)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("chain for %s %s: %w", ticker, expiration.Format("2006-01-02"), err)
	}
	return calls, puts, expiration, nil
}

// filterCandidates keeps strikes inside [lo, hi] with a minimum bid,
// optionally requiring a spread tighter than 15% of the ask.
func filterCandidates(cands []Candidate, lo, hi, minBid float64, tightSpread bool) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if c.Strike < lo || c.Strike > hi || c.Bid <= minBid {
			continue
		}
		if tightSpread && c.SpreadPct() >= 0.15 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// pickBest returns the highest-scoring candidate. Ties keep the first
// candidate in chain order, so selection is deterministic for a fixed
// chain.
func pickBest(cands []Candidate, score func(Candidate) float64) Candidate {
	best := cands[0]
	bestScore := score(cands[0])
	for _, c := range cands[1:] {
		if sc := score(c); sc > bestScore {
			best, bestScore = c, sc
		}
	}
	return best
}

func daysUntil(now, expiration time.Time) int {
	return int(expiration.Sub(now).Hours() / 24)
}

func maxHoldDays(dte int) int {
	hold := dte - expiryBufferD
	if hold > maxHoldCapDays {
		return maxHoldCapDays
	}
	return hold
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
