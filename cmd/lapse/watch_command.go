package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lapse/internal/device"
	"lapse/internal/logging"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Wait for a memory card and announce it",
		Long: "Watch listens for removable storage insertion events and reports the\n" +
			"device node so an import can be started once the card is mounted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			out := cmd.OutOrStdout()
			monitor := device.NewMonitor(cfg, logger, func(_ context.Context, node string) error {
				fmt.Fprintf(out, "Detected %s. Mount it and run: lapse import <mountpoint>\n", node)
				return nil
			})

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := monitor.Start(runCtx); err != nil {
				return err
			}
			defer monitor.Stop()
			if !monitor.Running() {
				return fmt.Errorf("device monitoring is unavailable on this system")
			}

			fmt.Fprintln(out, "Waiting for a memory card (Ctrl-C to stop)...")
			<-runCtx.Done()
			logger.Info("watch stopped", logging.Error(runCtx.Err()))
			return nil
		},
	}
}
