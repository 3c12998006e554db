package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/basket/internal/config"
	"github.com/blackwell-systems/basket/internal/logging"
)

var (
	dbPath    string
	cfgFile   string
	logLevel  string
	logFormat string

	// settings is resolved before every command runs.
	settings *config.Settings

	// RootCmd is the root command for basket
	RootCmd = &cobra.Command{
		Use:   "basket",
		Short: "Frequent itemset and association rule mining for transaction data",
		Long: `basket mines transaction datasets (one basket per line) for frequent
itemsets using the Apriori algorithm and derives association rules of the
form {bread} => {milk} with their confidence and lift.

Runs can be saved to a local SQLite database, browsed, explained and used
to recommend items for a partial basket.

Quick Start:
  1. basket mine baskets.txt --min-support 0.3 --save
  2. basket show latest
  3. basket recommend latest bread

Examples:
  # Mine a CSV file without saving
  basket mine orders.csv --min-support 0.05 --min-confidence 0.6

  # List saved runs
  basket runs

  # Explain rule 3 of run 1
  basket explain 1 3

  # Re-mine whenever the file changes
  basket watch baskets.txt --save`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "basket: frequent itemset and association rule mining")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'basket mine <file>' to mine a dataset.")
			fmt.Fprintln(out, "Run 'basket --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.basket/basket.db)")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/basket/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// flagKeys maps command-line flags onto config keys. Flags only override
// the config when set explicitly.
var flagKeys = map[string]string{
	"log-level":      "logging.level",
	"log-format":     "logging.format",
	"min-support":    "mining.min_support",
	"min-confidence": "mining.min_confidence",
	"strategy":       "mining.strategy",
	"max-length":     "mining.max_length",
	"format":         "dataset.format",
	"separator":      "dataset.separator",
	"lowercase":      "dataset.lowercase",
	"header":         "dataset.header",
}

// loadSettings resolves configuration and sets up logging for cmd.
func loadSettings(cmd *cobra.Command, args []string) error {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	settings = config.FromViper(v)

	if err := logging.Setup(cmd.ErrOrStderr(), settings.Logging.Level, settings.Logging.Format); err != nil {
		return err
	}
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "basket.db"), nil
}

// dataDir returns ~/.basket, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".basket")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create basket directory: %w", err)
	}
	return dir, nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}

// getReportDir returns the default directory for exported reports.
func getReportDir() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reports"), nil
}
