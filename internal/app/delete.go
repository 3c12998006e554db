package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <run-id|latest>",
	Short:   "Delete a saved run with its itemsets and rules",
	Example: `  basket delete 4`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := resolveRunID(st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteRun(id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted run %d\n", id)
	return nil
}
