package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/config"
	"github.com/blackwell-systems/basket/internal/dataset"
	"github.com/blackwell-systems/basket/internal/logging"
	"github.com/blackwell-systems/basket/internal/store"
)

// stdinSource is the dataset argument that reads from standard input.
const stdinSource = "-"

// openStore opens the database. When create is set the schema is created
// first; read-only commands leave it alone so an empty database reports
// store.ErrNotInitialized.
func openStore(create bool) (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if create {
		if err := st.CreateSchema(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create database schema: %w", err)
		}
	}
	return st, nil
}

// resolveRunID parses a run id argument. "latest" selects the newest run.
func resolveRunID(st *store.Store, arg string) (int64, error) {
	if strings.EqualFold(arg, "latest") {
		run, err := st.LatestRun()
		if err != nil {
			return 0, err
		}
		return run.ID, nil
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q (want a positive number or 'latest')", arg)
	}
	return id, nil
}

// datasetOptions builds parse options from the resolved settings and the
// user's alias file.
func datasetOptions() (dataset.Options, error) {
	opts := dataset.Options{
		Format:    settings.Dataset.Format,
		Separator: settings.Dataset.Separator,
		Lowercase: settings.Dataset.Lowercase,
		Header:    settings.Dataset.Header,
	}

	dir, err := config.Dir()
	if err != nil {
		return opts, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	aliases, err := config.LoadAliases(dir)
	if err != nil {
		return opts, fmt.Errorf("failed to load aliases: %w", err)
	}
	opts.Aliases = aliases.Aliases
	return opts, nil
}

// readTransactions loads the dataset at source, or stdin for "-".
func readTransactions(source string, stdin io.Reader, opts dataset.Options) ([][]string, error) {
	if source == stdinSource {
		return dataset.Parse(stdin, opts.Format, opts)
	}
	return dataset.ReadFile(source, opts)
}

// miningConfig converts the resolved settings into miner inputs.
func miningConfig() (apriori.Config, []apriori.Option, error) {
	cfg := apriori.Config{
		MinSupport:    settings.Mining.MinSupport,
		MinConfidence: settings.Mining.MinConfidence,
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	strategy, err := apriori.ParseStrategy(settings.Mining.Strategy)
	if err != nil {
		return cfg, nil, err
	}

	opts := []apriori.Option{
		apriori.WithStrategy(strategy),
		apriori.WithMaxLength(settings.Mining.MaxLength),
		apriori.WithLogger(logrus.StandardLogger()),
	}
	return cfg, opts, nil
}

// mineSource reads and mines a dataset with the resolved settings. extra
// options are appended after the configured ones.
func mineSource(source string, stdin io.Reader, extra ...apriori.Option) (*apriori.Result, dataset.Summary, error) {
	opts, err := datasetOptions()
	if err != nil {
		return nil, dataset.Summary{}, err
	}
	transactions, err := readTransactions(source, stdin, opts)
	if err != nil {
		return nil, dataset.Summary{}, err
	}
	summary := dataset.Summarize(transactions)
	logging.LogDebug("dataset loaded", logging.Fields{
		"source":       source,
		"transactions": summary.Transactions,
		"items":        summary.DistinctItems,
	})

	cfg, mineOpts, err := miningConfig()
	if err != nil {
		return nil, summary, err
	}

	res, err := apriori.Mine(transactions, cfg, append(mineOpts, extra...)...)
	if errors.Is(err, apriori.ErrInternalConsistency) {
		logging.LogError(err, "mining produced an inconsistent table", logging.Fields{"source": source})
	}
	return res, summary, err
}

// saveResult stores a mined result as a new run.
func saveResult(st *store.Store, source string, summary dataset.Summary, res *apriori.Result) (int64, error) {
	run := &store.Run{
		Source:        source,
		Transactions:  summary.Transactions,
		DistinctItems: summary.DistinctItems,
		MinSupport:    res.Config.MinSupport,
		MinConfidence: res.Config.MinConfidence,
		Strategy:      string(res.Strategy),
	}
	id, err := st.SaveRun(run, res.Table, res.Rules)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	logging.LogInfo("run saved", logging.Fields{"run": id, "source": source})
	return id, nil
}

// isTerminalInput reports whether stdin is an interactive terminal.
func isTerminalInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
