package options

import (
	"fmt"
	"time"
)

// Trade directions and strategies.
const (
	Bullish = "BULLISH"
	Bearish = "BEARISH"

	StrategyBuyCall = "BUY_CALL"
	StrategyBuyPut  = "BUY_PUT"
)

// Trade is a fully specified option trade recommendation. It is
// immutable once returned by the selector.
type Trade struct {
	Ticker    string `json:"ticker"`
	Direction string `json:"direction"`
	Strategy  string `json:"strategy"`

	Contract   string    `json:"contract"` // e.g. "NVDA 02/21 $180 Call"
	Strike     float64   `json:"strike"`
	Expiration time.Time `json:"expiration"`
	OptionType string    `json:"option_type"`

	CurrentStockPrice float64 `json:"current_stock_price"`
	OptionBid         float64 `json:"option_bid"`
	OptionAsk         float64 `json:"option_ask"`
	EntryPrice        float64 `json:"entry_price"` // mid, use as limit

	StockTarget  float64 `json:"stock_target"`
	OptionTarget float64 `json:"option_target"`
	OptionStop   float64 `json:"option_stop"`

	RiskDollars   float64 `json:"risk_dollars"`
	RewardDollars float64 `json:"reward_dollars"`
	RiskReward    float64 `json:"risk_reward"`

	ContractsFor500  int `json:"contracts_for_500"`
	ContractsFor1000 int `json:"contracts_for_1000"`

	EntryTrigger string `json:"entry_trigger"`
	ExitTrigger  string `json:"exit_trigger"`
	MaxHoldDays  int    `json:"max_hold_days"`

	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

// ContractName formats the conventional short contract description.
func ContractName(ticker string, expiration time.Time, strike float64, optType string) string {
	kind := "Call"
	if optType == TypePut {
		kind = "Put"
	}
	return fmt.Sprintf("%s %s $%.0f %s", ticker, expiration.Format("01/02"), strike, kind)
}
