package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lapse/internal/scan"
	"lapse/internal/sequence"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var gapFlag int

	cmd := &cobra.Command{
		Use:   "scan <source>",
		Short: "List the sequences on a card without copying anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			gap := cfg.Import.GapThreshold
			if cmd.Flags().Changed("gap") {
				gap = gapFlag
			}

			scanner := scan.New(ctx.ensureLogger(), cfg.Import.Extensions)
			images, err := scanner.Scan(args[0])
			if err != nil {
				if errors.Is(err, scan.ErrNoImages) {
					fmt.Fprintln(cmd.OutOrStdout(), "No timelapse images found.")
					return nil
				}
				return err
			}
			sequences := sequence.Group(images, gap)

			store := ctx.openCatalog()
			if store != nil {
				defer store.Close()
			}

			rows := make([]table.Row, 0, len(sequences))
			for _, seq := range sequences {
				start, end := seq.Bounds()
				imported := false
				if store != nil {
					imported, _ = store.WasImported(cmd.Context(), seq.Fingerprint())
				}
				rows = append(rows, table.Row{
					seq.Index,
					filepath.Base(seq.SourceDir()),
					formatCount(seq.Count()),
					formatBytes(seq.TotalBytes()),
					formatTimestamp(start),
					formatSpan(start, end),
					yesNo(imported),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				table.Row{"SEQ", "FOLDER", "IMAGES", "SIZE", "START", "SPAN", "IMPORTED"},
				rows, 3, 4,
			))
			fmt.Fprintf(out, "%s images in %s sequences\n",
				formatCount(len(images)), formatCount(len(sequences)))
			return nil
		},
	}

	cmd.Flags().IntVar(&gapFlag, "gap", 0, "Maximum frame-number gap inside a sequence (overrides configuration)")
	return cmd
}
