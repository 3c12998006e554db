package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basket/internal/analyzer"
	"github.com/blackwell-systems/basket/internal/output"
	"github.com/blackwell-systems/basket/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved mining runs",
	Example: `  basket runs`,
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var (
	showRulesOnly    bool
	showItemsetsOnly bool

	showCmd = &cobra.Command{
		Use:   "show <run-id|latest>",
		Short: "Show the itemsets and rules of a saved run",
		Example: `  # Show the most recent run
  basket show latest

  # Show only the rules of run 3
  basket show 3 --rules-only`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().BoolVar(&showRulesOnly, "rules-only", false, "print only the rule table")
	showCmd.Flags().BoolVar(&showItemsetsOnly, "itemsets-only", false, "print only the itemset table")

	RootCmd.AddCommand(runsCmd)
	RootCmd.AddCommand(showCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if errors.Is(err, store.ErrNotInitialized) {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderRunTable(nil))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderRunTable(runs))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := resolveRunID(st, args[0])
	if err != nil {
		return err
	}
	run, err := st.GetRun(id)
	if err != nil {
		return err
	}
	table, err := st.GetTable(id)
	if err != nil {
		return err
	}
	rules, err := st.GetRules(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %d · %s · %s strategy\n", run.ID, run.Source, run.Strategy)
	fmt.Fprintf(out, "Created %s · min support %.1f%% · min confidence %.1f%%\n\n",
		run.CreatedAt.Format("2006-01-02 15:04:05"), run.MinSupport*100, run.MinConfidence*100)

	if !showRulesOnly {
		fmt.Fprint(out, output.RenderItemsetTable(table))
		fmt.Fprintln(out)
	}
	if !showItemsetsOnly {
		fmt.Fprint(out, output.RenderRuleTable(rules))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, output.RenderSummary(analyzer.Summarize(table, rules)))
	return nil
}
