package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously imported sequences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Catalog.Enabled {
				return errors.New("import history is disabled in the configuration")
			}
			store := ctx.openCatalog()
			if store == nil {
				return errors.New("import history is unavailable")
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No imports recorded yet.")
				return nil
			}

			rows := make([]table.Row, 0, len(records))
			for _, rec := range records {
				rows = append(rows, table.Row{
					formatTimestamp(rec.ImportedAt),
					rec.DestDir,
					formatCount(rec.ImageCount),
					formatBytes(rec.ByteTotal),
					formatSpan(rec.CaptureStart, rec.CaptureEnd),
				})
			}
			fmt.Fprintln(out, renderTable(
				table.Row{"IMPORTED", "DESTINATION", "IMAGES", "SIZE", "SPAN"},
				rows, 3, 4,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of records to show (0 for all)")
	return cmd
}
