package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basket/internal/config"
	"github.com/blackwell-systems/basket/internal/store"
	"github.com/blackwell-systems/basket/internal/watcher"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database, configuration and watch daemon status",
	Long: `Display where basket keeps its data and what it holds.

Shows:
  • Database location, size and number of saved runs
  • The most recent run
  • Effective mining thresholds and the number of item aliases
  • Whether a watch daemon is running`,
	Example: `  basket status`,
	Args:    cobra.NoArgs,
	RunE:    runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	const label = "%-14s"

	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	fmt.Fprintln(out)

	if fi, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, label+"%s (not created yet, run 'basket mine <file> --save')\n", "Database:", path)
	} else {
		fmt.Fprintf(out, label+"%s · %s\n", "Database:", path, humanize.Bytes(uint64(fi.Size())))

		st, err := openStore(false)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns()
		switch {
		case errors.Is(err, store.ErrNotInitialized):
			runs = nil
		case err != nil:
			return err
		}

		fmt.Fprintf(out, label+"%d saved\n", "Runs:", len(runs))
		if len(runs) > 0 {
			latest := runs[0]
			fmt.Fprintf(out, label+"#%d %s · %s · %d itemsets · %d rules\n", "Latest:",
				latest.ID, filepath.Base(latest.Source), humanize.Time(latest.CreatedAt), latest.ItemsetCount, latest.RuleCount)
		}
	}

	fmt.Fprintf(out, label+"support %.1f%% · confidence %.1f%% · %s\n", "Mining:",
		settings.Mining.MinSupport*100, settings.Mining.MinConfidence*100, settings.Mining.Strategy)

	if dir, err := config.Dir(); err == nil {
		aliases, err := config.LoadAliases(dir)
		if err == nil {
			fmt.Fprintf(out, label+"%d item aliases (%s)\n", "Aliases:", len(aliases.Aliases), dir)
		}
	}

	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return fmt.Errorf("failed to get PID file path: %w", err)
	}
	running, err := watcher.IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		fmt.Fprintf(out, label+"running (PID file %s)\n", "Watch daemon:", pidFile)
	} else {
		fmt.Fprintf(out, label+"stopped\n", "Watch daemon:")
	}

	fmt.Fprintln(out)
	return nil
}
