// Package risk holds the small pieces of trade math shared by the
// signal composer and the option selector: risk/reward ratios, budgeted
// contract sizing, and confidence tiers.
package risk

import "math"

// Confidence tiers for a proposed trade.
const (
	High   = "HIGH"
	Medium = "MEDIUM"
	Low    = "LOW"
)

// RR is reward over risk for an entry/stop/target triple. Zero risk
// yields 0, not infinity.
func RR(entry, stop, target float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(target-entry) / risk
}

// ContractsForBudget sizes an option position: contracts that roughly
// fit the dollar budget at 100 shares per contract, never below one.
func ContractsForBudget(budget, premium float64) int {
	if premium <= 0 {
		return 1
	}
	n := int(budget / (premium * 100))
	if n < 1 {
		return 1
	}
	return n
}

// Confidence grades a trade by its risk/reward and the strength of the
// signal behind it.
func Confidence(rr, signalScore float64) string {
	switch {
	case rr >= 2 && signalScore >= 40:
		return High
	case rr >= 1.5 && signalScore >= 20:
		return Medium
	default:
		return Low
	}
}

// ConfidenceByRR grades on risk/reward alone, for trades where no
// composite signal score backs the thesis.
func ConfidenceByRR(rr float64) string {
	switch {
	case rr >= 2:
		return High
	case rr >= 1.5:
		return Medium
	default:
		return Low
	}
}
