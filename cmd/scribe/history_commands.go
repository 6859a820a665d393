package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/history"
	"scribe/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage transcription history",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryRemoveCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transcriptions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd.Context(), func(list *history.List) error {
				records := list.Records()
				if asJSON {
					return printJSON(cmd.OutOrStdout(), records)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "History is empty")
					return nil
				}
				table := renderTable(
					[]string{"ID", "Name", "Size", "Created", "Modified", "Preview"},
					buildHistoryRows(records),
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit history as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transcription in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd.Context(), func(list *history.List) error {
				record, ok := list.Find(args[0])
				if !ok {
					return services.Wrap(services.ErrNotFound, "cli", "history show",
						fmt.Sprintf("no transcription with id %q", args[0]), nil)
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), record)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %s\n", record.ID)
				fmt.Fprintf(out, "Name:     %s\n", record.DisplayName())
				if record.Size != "" {
					fmt.Fprintf(out, "Size:     %s\n", record.Size)
				}
				fmt.Fprintf(out, "Created:  %s\n", formatDisplayTime(record.CreatedAt))
				fmt.Fprintf(out, "Modified: %s\n", formatDisplayTime(record.LastModified))
				fmt.Fprintln(out)
				fmt.Fprintln(out, record.Text)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the record as JSON")
	return cmd
}

func newHistoryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete one transcription from history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd.Context(), func(list *history.List) error {
				removed, err := list.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return services.Wrap(services.ErrNotFound, "cli", "history remove",
						fmt.Sprintf("no transcription with id %q", args[0]), nil)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all transcription history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(cmd.Context(), func(list *history.List) error {
				count := list.Len()
				if count == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "History is empty")
					return nil
				}
				if !yes {
					fmt.Fprintf(cmd.OutOrStdout(),
						"This deletes all %d history records. Re-run with --yes to confirm.\n", count)
					return nil
				}
				if err := list.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d records\n", count)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
