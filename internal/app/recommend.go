package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basket/internal/analyzer"
	"github.com/blackwell-systems/basket/internal/dataset"
	"github.com/blackwell-systems/basket/internal/output"
)

var (
	recommendLimit int

	recommendCmd = &cobra.Command{
		Use:   "recommend <run-id|latest> <item>...",
		Short: "Suggest items for a partial basket using a run's rules",
		Long: `Apply the rules of a saved run to a basket.

Every rule whose left-hand side is contained in the basket suggests the
items on its right-hand side that the basket lacks. Basket items get the
same case folding and aliases as mined datasets. Suggestions are ranked
by the best confidence, then lift.`,
		Example: `  basket recommend latest bread
  basket recommend 2 beer chips --limit 3`,
		Args: cobra.MinimumNArgs(2),
		RunE: runRecommend,
	}
)

func init() {
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 10, "maximum number of suggestions (0 for all)")
	RootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := resolveRunID(st, args[0])
	if err != nil {
		return err
	}

	opts, err := datasetOptions()
	if err != nil {
		return err
	}

	recs, err := analyzer.New(st).Recommend(id, dataset.NormalizeItems(args[1:], opts), recommendLimit)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderRecommendationTable(recs))
	return nil
}
