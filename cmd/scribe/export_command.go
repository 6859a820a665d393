package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/export"
	"scribe/internal/history"
	"scribe/internal/notifications"
	"scribe/internal/services"
	"scribe/internal/services/backend"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <txt|docx> <id>",
		Short: "Download a transcription as a text or Word document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := backend.ParseExportKind(args[0])
			if err != nil {
				return err
			}

			return ctx.withCoordinator(cmd.Context(), func(coordinator *export.Coordinator, _ *history.List) error {
				result, err := coordinator.Export(cmd.Context(), kind, args[1], outPath)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %s\n", result.Path)
				if !result.Synced {
					fmt.Fprintf(out, "Warning: backend sync failed before export: %s\n",
						services.UserMessage(result.SyncErr))
				}

				if cfg, err := ctx.ensureConfig(); err == nil {
					notifier := notifications.NewService(cfg)
					_ = notifier.NotifyExportCompleted(cmd.Context(), result.Record.DisplayName(), string(kind))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file or directory")
	return cmd
}
