package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/swing/config"
)

var (
	cfgFile string
	dataDir string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "swing",
	Short: "Swing-trading decision support: signals, option trades, paper portfolio",
	Long: `Swing scores tickers on trend, momentum, volume, and volatility,
derives entry/stop/target levels, picks option contracts for the
strongest setups, and tracks a paper portfolio with live P&L.

Market data is read from the data directory; fetching it is left to
whatever pipeline fills those files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.InfoLevel)
	},
}

// Execute runs the root command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override data directory")
}

// loadConfig reads the configured (or default) configuration and
// applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	return cfg, nil
}
