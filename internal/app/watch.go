package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blackwell-systems/basket/internal/analyzer"
	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/dataset"
	"github.com/blackwell-systems/basket/internal/logging"
	"github.com/blackwell-systems/basket/internal/output"
	"github.com/blackwell-systems/basket/internal/store"
	"github.com/blackwell-systems/basket/internal/watcher"
)

var (
	watchSave        bool
	watchDebounce    time.Duration
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-mine a dataset whenever it changes",
		Long: `Watch a dataset file and mine it again each time it is written.

The dataset is mined once on start. Subsequent writes are debounced so a
burst of appends triggers a single run. With --save every run is stored in
the database.

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as background process
  • Stop: Stop a running daemon`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  basket watch baskets.txt --min-support 0.3

  # Run as background daemon, saving each run
  basket watch baskets.txt --save --daemon

  # Stop running daemon
  basket watch --stop`,
		Args: func(cmd *cobra.Command, args []string) error {
			if watchStop {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: runWatch,
	}
)

func init() {
	addMiningFlags(watchCmd)
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "save every run to the database")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-mining")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.basket/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.basket/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}
	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		return stopWatchDaemon(cmd.OutOrStdout())
	}

	source, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}

	if watchDaemon {
		return startWatchDaemon(cmd, source)
	}

	var st *store.Store
	if watchSave {
		st, err = openStore(true)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	out := cmd.OutOrStdout()
	if watchDaemonChild {
		// The daemon's stdout is its log file.
		out = io.Discard
	}

	session := &watchSession{out: out, st: st}
	w, err := watcher.New(source, session.mine, session.sink)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.SetDebounce(watchDebounce)
	w.SetLogger(logrus.WithField("component", "watch"))

	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}
	return runWatchForeground(out, w)
}

// watchSession carries state between the watcher's mine and sink calls,
// which run one after the other on the watcher goroutine.
type watchSession struct {
	out     io.Writer
	st      *store.Store // nil unless --save
	summary dataset.Summary
}

// mine reads and mines path with the resolved settings.
func (s *watchSession) mine(path string) (*apriori.Result, error) {
	res, summary, err := mineSource(path, nil)
	if err != nil {
		return nil, err
	}
	s.summary = summary
	return res, nil
}

// sink prints each result and saves it when a store is attached.
func (s *watchSession) sink(path string, res *apriori.Result, err error) {
	stamp := time.Now().Format("15:04:05")
	if err != nil {
		fmt.Fprintf(s.out, "[%s] ✗ %v\n", stamp, err)
		return
	}

	fmt.Fprintf(s.out, "[%s] %s\n", stamp, output.RenderSummary(analyzer.Summarize(res.Table, res.Rules)))
	fmt.Fprint(s.out, output.RenderRuleTable(res.Rules))
	fmt.Fprintln(s.out)

	if s.st == nil {
		return
	}
	id, err := saveResult(s.st, path, s.summary, res)
	if err != nil {
		logging.LogError(err, "failed to save watched run", logging.Fields{"path": path})
		return
	}
	fmt.Fprintf(s.out, "✓ Saved as run %d\n\n", id)
}

func stopWatchDaemon(out io.Writer) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running {
		fmt.Fprintln(out, "Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon")
	spinner.SetWriter(out)
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")
	return nil
}

// daemonArgs rebuilds the command line for the daemon child from the flags
// the user set.
func daemonArgs(cmd *cobra.Command, source string) []string {
	args := []string{"watch", source, "--daemon-child"}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == "daemon" {
			return
		}
		args = append(args, "--"+f.Name+"="+f.Value.String())
	})
	return args
}

func startWatchDaemon(cmd *cobra.Command, source string) error {
	out := cmd.OutOrStdout()

	spinner := output.NewSpinner("Starting daemon")
	spinner.SetWriter(out)
	spinner.Start()
	if err := watcher.StartDaemon(watchPIDFile, watchLogFile, daemonArgs(cmd, source)); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon started")

	fmt.Fprintf(out, "\nWatching %s\n", source)
	fmt.Fprintf(out, "  PID file: %s\n", watchPIDFile)
	fmt.Fprintf(out, "  Log file: %s\n", watchLogFile)
	fmt.Fprintf(out, "\nTo stop: basket watch --stop\n")
	return nil
}

func runWatchForeground(out io.Writer, w *watcher.Watcher) error {
	fmt.Fprintf(out, "Watching %s (press Ctrl+C to stop)...\n\n", w.Path())

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	fmt.Fprintf(out, "\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	fmt.Fprintln(out, "✓ Watcher stopped")
	return nil
}
