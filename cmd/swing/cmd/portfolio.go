package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/swing/config"
	"github.com/rustyeddy/swing/journal"
	"github.com/rustyeddy/swing/portfolio"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Manage the paper-trading portfolio",
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show open positions and summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeJournal, err := buildLedger()
		if err != nil {
			return err
		}
		defer closeJournal()
		return printPortfolio(ledger)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show closed trades",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeJournal, err := buildLedger()
		if err != nil {
			return err
		}
		defer closeJournal()

		history, err := ledger.History()
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\nTRADE HISTORY\n%s\n", rule(), rule())
		if len(history) == 0 {
			fmt.Println("\nNo closed trades yet.")
			return nil
		}

		fmt.Printf("\n%-12s %-25s %7s %7s %10s %-8s\n", "Date", "Contract", "Entry", "Exit", "P&L", "Result")
		fmt.Println(rule())
		for _, t := range history {
			fmt.Printf("%-12s %-25s $%5.2f $%5.2f $%+8.2f %-8s\n",
				t.ExitDate.Format("2006-01-02"), t.Contract, t.EntryPrice, t.ExitPrice, t.PnLDollars, t.Result)
		}

		summary, err := ledger.Summarize()
		if err != nil {
			return err
		}
		fmt.Printf("\nTotal: %d trades | Win Rate: %.1f%% | P&L: $%+.2f\n",
			summary.TotalTrades, summary.WinRate, summary.RealizedPnL)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh prices and report exit conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeJournal, err := buildLedger()
		if err != nil {
			return err
		}
		defer closeJournal()

		alerts, err := ledger.Update()
		if err != nil {
			return err
		}
		for _, a := range alerts {
			log.Info().
				Str("type", a.Type).
				Str("position", a.Position.ID).
				Msg(a.Message)
			fmt.Println(a.Message)
		}
		return printPortfolio(ledger)
	},
}

var (
	openTicker      string
	openContract    string
	openType        string
	openStrike      float64
	openExpiration  string
	openEntry       float64
	openContracts   int
	openTarget      float64
	openStop        float64
	openStockTarget float64
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a paper position",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeJournal, err := buildLedger()
		if err != nil {
			return err
		}
		defer closeJournal()

		expiration, err := time.Parse("2006-01-02", openExpiration)
		if err != nil {
			return fmt.Errorf("bad expiration %q (want YYYY-MM-DD): %w", openExpiration, err)
		}

		pos, err := ledger.Open(portfolio.OpenRequest{
			Ticker:      openTicker,
			Contract:    openContract,
			OptionType:  openType,
			Strike:      openStrike,
			Expiration:  expiration,
			EntryPrice:  openEntry,
			Contracts:   openContracts,
			TargetPrice: openTarget,
			StopPrice:   openStop,
			StockTarget: openStockTarget,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Opened: %s x%d @ $%.2f\n", pos.Contract, pos.Contracts, pos.EntryPrice)
		fmt.Printf("  Cost: $%.2f\n", pos.CostBasis)
		fmt.Printf("  Target: $%.2f | Stop: $%.2f\n", pos.TargetPrice, pos.StopPrice)
		return nil
	},
}

var (
	closePrice  float64
	closeReason string
)

var closeCmd = &cobra.Command{
	Use:   "close <position-id>",
	Short: "Close a position at a price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeJournal, err := buildLedger()
		if err != nil {
			return err
		}
		defer closeJournal()

		closed, err := ledger.Close(args[0], closePrice, closeReason)
		if err != nil {
			return err
		}

		fmt.Printf("Closed: %s\n", closed.Contract)
		fmt.Printf("  Entry: $%.2f -> Exit: $%.2f\n", closed.EntryPrice, closed.ExitPrice)
		fmt.Printf("  P&L: $%+.2f (%+.1f%%)\n", closed.PnLDollars, closed.PnLPercent)
		fmt.Printf("  Result: %s (%s)\n", closed.Result, closed.ExitReason)
		return nil
	},
}

func init() {
	openCmd.Flags().StringVar(&openTicker, "ticker", "", "underlying ticker")
	openCmd.Flags().StringVar(&openContract, "contract", "", "contract description")
	openCmd.Flags().StringVar(&openType, "type", "call", "option type: call or put")
	openCmd.Flags().Float64Var(&openStrike, "strike", 0, "strike price")
	openCmd.Flags().StringVar(&openExpiration, "expiration", "", "expiration date (YYYY-MM-DD)")
	openCmd.Flags().Float64Var(&openEntry, "entry", 0, "option entry price")
	openCmd.Flags().IntVar(&openContracts, "contracts", 1, "number of contracts")
	openCmd.Flags().Float64Var(&openTarget, "target", 0, "option target price")
	openCmd.Flags().Float64Var(&openStop, "stop", 0, "option stop price")
	openCmd.Flags().Float64Var(&openStockTarget, "stock-target", 0, "underlying target price")
	_ = openCmd.MarkFlagRequired("ticker")
	_ = openCmd.MarkFlagRequired("expiration")
	_ = openCmd.MarkFlagRequired("entry")

	closeCmd.Flags().Float64Var(&closePrice, "price", 0, "exit price")
	closeCmd.Flags().StringVar(&closeReason, "reason", portfolio.ExitManual, "exit reason: TARGET, STOP, MANUAL, EXPIRED")
	_ = closeCmd.MarkFlagRequired("price")

	portfolioCmd.AddCommand(statusCmd, historyCmd, updateCmd, openCmd, closeCmd)
	rootCmd.AddCommand(portfolioCmd)
}

// buildLedger wires the ledger to its store, quote source, and the
// configured journal. The returned func closes the journal.
func buildLedger() (*portfolio.Ledger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	providers := newFileProviders(cfg.Data.Dir)
	opts := []portfolio.Option{portfolio.WithQuotes(providers)}

	closeJournal := func() {}
	if j, err := openJournal(cfg); err != nil {
		return nil, nil, err
	} else if j != nil {
		opts = append(opts, portfolio.WithJournal(j))
		closeJournal = func() { _ = j.Close() }
	}

	store := portfolio.NewFileStore(cfg.Data.Dir)
	return portfolio.NewLedger(store, opts...), closeJournal, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.Path)
	case "csv":
		return journal.NewCSV(cfg.Journal.Path)
	default:
		return nil, nil
	}
}

func printPortfolio(ledger *portfolio.Ledger) error {
	positions, err := ledger.Positions()
	if err != nil {
		return err
	}
	summary, err := ledger.Summarize()
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\nPAPER TRADING PORTFOLIO\n%s\n", rule(), rule())

	if len(positions) == 0 {
		fmt.Println("\nNo open positions.")
	} else {
		fmt.Printf("\n%-30s %8s %8s %12s %8s\n", "Contract", "Entry", "Current", "P&L", "%")
		fmt.Println(rule())
		for _, p := range positions {
			fmt.Printf("%-30s $%6.2f $%6.2f $%+10.2f %+7.1f%%\n",
				p.Contract, p.EntryPrice, p.CurrentPrice, p.PnLDollars, p.PnLPercent)
		}
	}

	fmt.Printf("\nOpen Positions: %d\n", summary.OpenPositions)
	fmt.Printf("Cost Basis: $%.2f\n", summary.TotalCost)
	fmt.Printf("Current Value: $%.2f\n", summary.TotalValue)
	fmt.Printf("Unrealized P&L: $%+.2f\n", summary.UnrealizedPnL)
	fmt.Printf("\nClosed Trades: %d\n", summary.TotalTrades)
	fmt.Printf("Win Rate: %.1f%% (%dW / %dL)\n", summary.WinRate, summary.Wins, summary.Losses)
	fmt.Printf("Realized P&L: $%+.2f\n", summary.RealizedPnL)
	fmt.Printf("\nTOTAL P&L: $%+.2f\n", summary.TotalPnL)
	return nil
}
