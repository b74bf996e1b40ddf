package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lapse/internal/config"
	"lapse/internal/importer"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		destFlag   string
		prefixFlag string
		gapFlag    int
		yesFlag    bool
		dryRunFlag bool
		verifyFlag bool
	)

	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Copy timelapse sequences from a mounted card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			run := *cfg
			if strings.TrimSpace(destFlag) != "" {
				dest, err := config.ExpandPath(strings.TrimSpace(destFlag))
				if err != nil {
					return err
				}
				run.Paths.DestDir = dest
			}
			if strings.TrimSpace(prefixFlag) != "" {
				run.Import.Prefix = strings.TrimSpace(prefixFlag)
			}
			if cmd.Flags().Changed("gap") {
				run.Import.GapThreshold = gapFlag
			}
			if verifyFlag {
				run.Import.Verify = true
			}
			if err := run.Validate(); err != nil {
				return err
			}
			if run.Paths.DestDir == "" {
				return errors.New("no destination directory configured (set paths.dest_dir or pass --dest)")
			}

			store := ctx.openCatalog()
			if store != nil {
				defer store.Close()
			}

			var selector importer.Selector = importer.AcceptAll{}
			if !yesFlag {
				if f, ok := cmd.InOrStdin().(*os.File); ok &&
					!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
					return errors.New("stdin is not a terminal; pass --yes to import without prompting")
				}
				selector = newPromptSelector(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			imp := importer.New(&run, ctx.ensureLogger(), store, selector)
			summary, err := imp.Run(cmd.Context(), args[0], dryRunFlag)
			if err != nil {
				return err
			}

			renderImportSummary(cmd, summary, dryRunFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&destFlag, "dest", "", "Destination directory (overrides configuration)")
	cmd.Flags().StringVar(&prefixFlag, "prefix", "", "Destination directory prefix (overrides configuration)")
	cmd.Flags().IntVar(&gapFlag, "gap", 0, "Maximum frame-number gap inside a sequence (overrides configuration)")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Import every sequence without prompting")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be imported without copying")
	cmd.Flags().BoolVar(&verifyFlag, "verify", false, "Verify copies with a checksum")

	return cmd
}

func renderImportSummary(cmd *cobra.Command, summary *importer.Summary, dryRun bool) {
	out := cmd.OutOrStdout()

	if summary.Images == 0 {
		fmt.Fprintln(out, "No timelapse images found.")
		return
	}

	rows := make([]table.Row, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		seq := outcome.Sequence
		start, end := seq.Bounds()
		status := string(outcome.Status)
		if outcome.Err != nil {
			status = fmt.Sprintf("%s (%v)", status, outcome.Err)
		}
		rows = append(rows, table.Row{
			seq.Index,
			formatCount(seq.Count()),
			formatBytes(seq.TotalBytes()),
			formatTimestamp(start),
			formatSpan(start, end),
			status,
		})
	}
	fmt.Fprintln(out, renderTable(
		table.Row{"SEQ", "IMAGES", "SIZE", "START", "SPAN", "RESULT"},
		rows, 2, 3,
	))

	var headline string
	if dryRun {
		planned := 0
		for _, outcome := range summary.Outcomes {
			if outcome.Status == importer.StatusPlanned {
				planned++
			}
		}
		headline = fmt.Sprintf("Would import %s of %s sequences",
			formatCount(planned), formatCount(len(summary.Outcomes)))
	} else {
		headline = fmt.Sprintf("Imported %s of %s sequences (%s copied) in %s",
			formatCount(summary.Exported), formatCount(len(summary.Outcomes)),
			formatBytes(summary.Bytes), summary.Elapsed.Round(10*time.Millisecond))
	}
	for _, line := range headerLines(headline, shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
}
