package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basket/internal/analyzer"
	"github.com/blackwell-systems/basket/internal/output"
)

var explainAll bool

var explainCmd = &cobra.Command{
	Use:   "explain <run-id|latest> [rule#]",
	Short: "Show the support, confidence and lift breakdown of a rule",
	Long: `Display a detailed breakdown of one rule of a saved run.

Rule numbers are the positions shown by 'basket show'. With --all every
rule of the run is explained in order.`,
	Example: `  # Explain rule 1 of the latest run
  basket explain latest 1

  # Explain every rule of run 3
  basket explain 3 --all`,
	Args: func(cmd *cobra.Command, args []string) error {
		if explainAll {
			if len(args) != 1 {
				return fmt.Errorf("expected a run id")
			}
			return nil
		}
		if len(args) != 2 {
			return fmt.Errorf("expected a run id and a rule number")
		}
		return nil
	},
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().BoolVar(&explainAll, "all", false, "explain every rule of the run")
	RootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	position := 0
	if !explainAll {
		var err error
		position, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rule number %q", args[1])
		}
	}

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := resolveRunID(st, args[0])
	if err != nil {
		return err
	}

	a := analyzer.New(st)
	out := cmd.OutOrStdout()

	if !explainAll {
		score, err := a.ExplainRule(id, position)
		if err != nil {
			return err
		}
		fmt.Fprint(out, output.RenderRuleDetail(score))
		return nil
	}

	scores, err := a.ScoreRun(id)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		fmt.Fprintf(out, "Run %d has no rules.\n", id)
		return nil
	}
	for i, score := range scores {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, output.RenderRuleDetail(score))
	}
	return nil
}
