package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basket/internal/output"
	"github.com/blackwell-systems/basket/internal/report"
)

var (
	exportDir string
	exportAll bool

	exportCmd = &cobra.Command{
		Use:   "export [run-id|latest]...",
		Short: "Export saved runs to JSON reports",
		Long: `Write saved runs to JSON report files.

Each report holds the run's settings, every frequent itemset with its
support, and every rule in mined order. Reports can be loaded back with
'basket import'.`,
		Example: `  # Export the latest run
  basket export latest

  # Export every run to a directory
  basket export --all --dir ./reports`,
		RunE: runExport,
	}

	importCmd = &cobra.Command{
		Use:   "import <report.json>",
		Short: "Import a JSON report as a new run",
		Example: `  basket import ~/.basket/reports/run-3-20240101-120000.json`,
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
)

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default: ~/.basket/reports)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every saved run")

	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportAll == (len(args) > 0) {
		return fmt.Errorf("pass run ids or --all")
	}

	dir := exportDir
	if dir == "" {
		var err error
		if dir, err = getReportDir(); err != nil {
			return err
		}
	}

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	var ids []int64
	if exportAll {
		runs, err := st.ListRuns()
		if err != nil {
			return err
		}
		for _, run := range runs {
			ids = append(ids, run.ID)
		}
	} else {
		for _, arg := range args {
			id, err := resolveRunID(st, arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No saved runs to export.")
		return nil
	}

	m := report.New(st, dir)
	progress := output.NewProgress(len(ids), "Exporting runs")
	progress.SetWriter(cmd.ErrOrStderr())

	paths := make([]string, 0, len(ids))
	for _, id := range ids {
		path, err := m.Export(id)
		if err != nil {
			progress.Finish()
			return fmt.Errorf("failed to export run %d: %w", id, err)
		}
		paths = append(paths, path)
		progress.Increment()
	}
	progress.Finish()

	for _, path := range paths {
		fmt.Fprintf(out, "✓ %s\n", path)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := report.New(st, "").Import(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %s as run %d\n", args[0], id)
	return nil
}
