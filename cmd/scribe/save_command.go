package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scribe/internal/export"
	"scribe/internal/history"
	"scribe/internal/services"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var (
		text     string
		textFile string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Save edited transcription text",
		Long: "Save edited text for a transcription. Text comes from --text, --text-file, or " +
			"stdin. The backend copy is updated when reachable; the local history copy always is.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := resolveSaveText(cmd.InOrStdin(), text, textFile)
			if err != nil {
				return err
			}

			return ctx.withCoordinator(cmd.Context(), func(coordinator *export.Coordinator, _ *history.List) error {
				outcome, err := coordinator.Save(cmd.Context(), args[0], content, name)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if outcome.Synced {
					fmt.Fprintf(out, "Saved %s\n", outcome.Record.DisplayName())
					return nil
				}
				fmt.Fprintf(out, "Saved %s locally; backend sync failed: %s\n",
					outcome.Record.DisplayName(), services.UserMessage(outcome.SyncErr))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Replacement text")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", "Read replacement text from a file")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Rename the transcription")
	return cmd
}

func resolveSaveText(stdin io.Reader, text, textFile string) (string, error) {
	if text != "" && textFile != "" {
		return "", services.Wrap(services.ErrValidation, "cli", "save",
			"--text and --text-file are mutually exclusive", nil)
	}
	if text != "" {
		return text, nil
	}
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", services.Wrap(services.ErrValidation, "cli", "save",
				fmt.Sprintf("cannot read %s", textFile), err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
