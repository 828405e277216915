package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/swing/options"
	"github.com/rustyeddy/swing/signal"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [tickers...]",
	Short: "Score tickers and print their signals",
	Long: `Analyze runs the full indicator pipeline on each ticker and prints
the composite score, the four factor scores, and the derived trade
levels. With no arguments it analyzes the configured watchlist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tickers := args
		if len(tickers) == 0 {
			tickers = cfg.Watchlist
		}

		providers := newFileProviders(cfg.Data.Dir)
		engine := &options.Engine{
			Series:  providers,
			Context: providers,
			Log:     log,
		}

		var scores []*signal.Score
		for _, ticker := range tickers {
			sc, err := engine.GenerateSignal(ticker)
			if err != nil {
				log.Warn().Str("ticker", ticker).Err(err).Msg("analysis failed")
				continue
			}
			scores = append(scores, sc)
			printScore(sc)
		}

		printRanking(scores)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func printScore(sc *signal.Score) {
	fmt.Printf("\n%s\n  %s ANALYSIS\n%s\n", rule(), sc.Ticker, rule())

	fmt.Printf("\nComposite Score: %+.0f [%s]\n", sc.Score, scoreBar(sc.Score))
	fmt.Printf("  Trend:      %+.0f\n", sc.TrendScore)
	fmt.Printf("  Momentum:   %+.0f\n", sc.MomentumScore)
	fmt.Printf("  Volume:     %+.0f\n", sc.VolumeScore)
	fmt.Printf("  Volatility: %+.0f\n", sc.VolatilityScore)

	fmt.Printf("\n>>> SIGNAL: %s\n", sc.Signal)
	fmt.Printf("    Entry Type: %s\n", sc.EntryType)
	fmt.Printf("    Entry Price: $%.2f\n", sc.EntryPrice)
	fmt.Printf("    Stop Loss: $%.2f\n", sc.StopLoss)
	fmt.Printf("    Target 1: $%.2f\n", sc.Target1)
	fmt.Printf("    Target 2: $%.2f\n", sc.Target2)
	fmt.Printf("    Risk/Reward: %.1f:1\n", sc.RiskReward)

	fmt.Println("\nReasons:")
	for _, r := range sc.Reasons {
		fmt.Printf("  + %s\n", r)
	}
	if len(sc.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range sc.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}
}

func printRanking(scores []*signal.Score) {
	if len(scores) == 0 {
		return
	}

	fmt.Printf("\n%s\nSUMMARY - RANKED BY SCORE\n%s\n", rule(), rule())
	sort.Slice(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	var actionable []string
	for _, s := range scores {
		fmt.Printf("%-6s | Score: %+4.0f | %-15s | Entry: $%.2f\n",
			s.Ticker, s.Score, s.Signal, s.EntryPrice)
		if s.Signal == signal.BuyNow {
			actionable = append(actionable, s.Ticker)
		}
	}

	if len(actionable) > 0 {
		fmt.Printf("\nACTIONABLE NOW: %s\n", strings.Join(actionable, ", "))
	} else {
		fmt.Println("\nNo immediate entries - wait for pullbacks or setups to develop")
	}
}

// scoreBar renders a -100..100 score as a 20-cell gauge.
func scoreBar(score float64) string {
	filled := int((score + 100) / 200 * 20)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", 20-filled)
}

func rule() string {
	return strings.Repeat("=", 60)
}
