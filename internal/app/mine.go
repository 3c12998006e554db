package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basket/internal/analyzer"
	"github.com/blackwell-systems/basket/internal/apriori"
	"github.com/blackwell-systems/basket/internal/output"
)

var (
	mineSave         bool
	mineRulesOnly    bool
	mineItemsetsOnly bool

	mineCmd = &cobra.Command{
		Use:   "mine <file>",
		Short: "Mine frequent itemsets and association rules from a dataset",
		Long: `Mine a transaction dataset for frequent itemsets and association rules.

Each line of a text file is one transaction; items are separated by
--separator (default ","). Files ending in .csv are read as CSV, where
quoted fields may contain the separator. Use "-" to read from stdin.

An itemset is frequent when it appears in at least min-support of the
transactions. A rule X => Y is reported when confidence, the share of
baskets containing X that also contain Y, is at least min-confidence.
Both thresholds are inclusive.

Item aliases from ~/.config/basket/aliases are applied before mining.`,
		Example: `  # Mine with defaults (support 0.5, confidence 0.5)
  basket mine baskets.txt

  # Lower thresholds and save the run
  basket mine baskets.txt --min-support 0.2 --min-confidence 0.7 --save

  # Tab separated, case-insensitive items, only rules
  basket mine orders.tsv --separator '\t' --lowercase --rules-only

  # Read from stdin
  cat baskets.txt | basket mine -`,
		Args: cobra.ExactArgs(1),
		RunE: runMine,
	}
)

func init() {
	addMiningFlags(mineCmd)
	mineCmd.Flags().BoolVar(&mineSave, "save", false, "save the run to the database")
	mineCmd.Flags().BoolVar(&mineRulesOnly, "rules-only", false, "print only the rule table")
	mineCmd.Flags().BoolVar(&mineItemsetsOnly, "itemsets-only", false, "print only the itemset table")

	RootCmd.AddCommand(mineCmd)
}

// addMiningFlags registers the flags shared by mine and watch. Their values
// are read through the config layer, which holds the defaults.
func addMiningFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-support", 0.5, "minimum support ratio in (0, 1]")
	cmd.Flags().Float64("min-confidence", 0.5, "minimum rule confidence in (0, 1]")
	cmd.Flags().String("strategy", string(apriori.StrategyApriori), "candidate strategy (apriori, exhaustive)")
	cmd.Flags().Int("max-length", 0, "largest itemset size to mine (0 for no limit)")
	cmd.Flags().String("format", "", "dataset format (text, csv; default from file extension)")
	cmd.Flags().String("separator", ",", "item separator for text and csv datasets")
	cmd.Flags().Bool("lowercase", false, "fold item labels to lower case")
	cmd.Flags().Bool("header", false, "skip the first record of a csv dataset")
}

func runMine(cmd *cobra.Command, args []string) error {
	if mineRulesOnly && mineItemsetsOnly {
		return fmt.Errorf("--rules-only and --itemsets-only are mutually exclusive")
	}

	source := args[0]
	if source == stdinSource && isTerminalInput(cmd.InOrStdin()) {
		return fmt.Errorf("no input on stdin (pipe a dataset or pass a file)")
	}

	out := cmd.OutOrStdout()

	spinner := output.NewSpinner("Mining " + source).WithElapsed()
	spinner.SetWriter(cmd.ErrOrStderr())
	spinner.Start()

	hook := apriori.WithLevelHook(func(s apriori.LevelStats) {
		spinner.UpdateMessage(fmt.Sprintf("Mining level %d (%d candidates, %d frequent)", s.Size, s.Candidates, s.Frequent))
	})

	res, summary, err := mineSource(source, cmd.InOrStdin(), hook)
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d transactions · %d distinct items · min support %.1f%% (%d baskets) · min confidence %.1f%%\n\n",
		summary.Transactions, summary.DistinctItems,
		res.Config.MinSupport*100, apriori.MinCount(res.Config.MinSupport, summary.Transactions),
		res.Config.MinConfidence*100)

	if !mineRulesOnly {
		fmt.Fprint(out, output.RenderItemsetTable(res.Table))
		fmt.Fprintln(out)
	}
	if !mineItemsetsOnly {
		fmt.Fprint(out, output.RenderRuleTable(res.Rules))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, output.RenderSummary(analyzer.Summarize(res.Table, res.Rules)))

	if !mineSave {
		return nil
	}

	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := saveResult(st, source, summary, res)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n✓ Saved as run %d\n", id)
	return nil
}
