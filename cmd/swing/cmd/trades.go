package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/swing/options"
	"github.com/rustyeddy/swing/risk"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Scan the watchlist for option trades",
	Long: `Trades generates a signal for every watchlist ticker and, for the
strong setups, picks the best option contract: calls on bullish
signals aiming at the first target, puts on bearish ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		providers := newFileProviders(cfg.Data.Dir)
		engine := &options.Engine{
			Series:   providers,
			Context:  providers,
			Selector: &options.Selector{Chains: providers, WeeksOut: cfg.Scan.WeeksOut},
			Log:      log,
			MinRR:    cfg.Scan.MinRiskRatio,
		}

		trades := engine.GenerateTrades(cfg.Watchlist)
		printTrades(trades)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tradesCmd)
}

func printTrades(trades []*options.Trade) {
	fmt.Printf("\n%s\nTODAY'S OPTIONS TRADES\n%s\n", rule(), rule())

	if len(trades) == 0 {
		fmt.Println("\nNo high-confidence trades today. Be patient.")
		return
	}

	rank := map[string]int{risk.High: 3, risk.Medium: 2, risk.Low: 1}
	sort.SliceStable(trades, func(i, j int) bool {
		if rank[trades[i].Confidence] != rank[trades[j].Confidence] {
			return rank[trades[i].Confidence] > rank[trades[j].Confidence]
		}
		return trades[i].RiskReward > trades[j].RiskReward
	})

	fmt.Printf("\n%-8s %-25s %8s %8s %6s %-8s\n", "Ticker", "Contract", "Entry", "Target", "R:R", "Conf")
	fmt.Println(rule())
	for _, t := range trades {
		fmt.Printf("%-8s %-25s $%6.2f $%6.2f %4.1f:1 %-8s\n",
			t.Ticker, t.Contract, t.EntryPrice, t.OptionTarget, t.RiskReward, t.Confidence)
	}

	for _, t := range trades {
		printTradeDetail(t)
	}
}

func printTradeDetail(t *options.Trade) {
	fmt.Printf("\n%s\n%s\n%s\n", rule(), t.Contract, rule())
	fmt.Printf("Direction: %s\nConfidence: %s\n", t.Direction, t.Confidence)
	fmt.Printf("\nSTOCK\n  Current: $%.2f\n  Target:  $%.2f (%+.1f%%)\n",
		t.CurrentStockPrice, t.StockTarget, (t.StockTarget/t.CurrentStockPrice-1)*100)
	fmt.Printf("\nOPTION\n  Bid/Ask: $%.2f / $%.2f\n", t.OptionBid, t.OptionAsk)
	fmt.Printf("  ENTRY: $%.2f (use limit order)\n", t.EntryPrice)
	fmt.Printf("  TARGET: $%.2f\n  STOP: $%.2f\n", t.OptionTarget, t.OptionStop)
	fmt.Printf("\nRISK/REWARD\n  Risk per contract: $%.0f\n  Reward per contract: $%.0f\n  R:R Ratio: %.1f:1\n",
		t.RiskDollars, t.RewardDollars, t.RiskReward)
	fmt.Printf("\nPOSITION SIZE\n  $500 risk = %d contract(s)\n  $1000 risk = %d contract(s)\n",
		t.ContractsFor500, t.ContractsFor1000)
	fmt.Printf("\nWHEN TO ENTER\n  %s\n", t.EntryTrigger)
	fmt.Printf("\nWHEN TO EXIT\n  %s\n  Max hold: %d days (exit before expiry)\n", t.ExitTrigger, t.MaxHoldDays)
	fmt.Printf("\nWHY: %s\n", t.Reason)
}
