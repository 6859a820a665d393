package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"scribe/internal/history"
	"scribe/internal/notifications"
	"scribe/internal/session"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Upload a media file and transcribe it",
		Long: "Upload an audio or video file to the transcription backend and wait for the " +
			"result. Supported formats: " + session.FormatList() + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.backendClient()
			if err != nil {
				return err
			}

			return ctx.withHistory(cmd.Context(), func(list *history.List) error {
				sess := session.New(client, list, ctx.loggerValue(), cfg.SessionLockPath())

				sink := newProgressSink(cmd.ErrOrStderr())
				record, err := sess.Run(cmd.Context(), args[0], sink.handle)
				sink.close()

				notifier := notifications.NewService(cfg)
				name := filepath.Base(args[0])
				if err != nil {
					_ = notifier.NotifyTranscriptionFailed(cmd.Context(), name, err)
					return err
				}
				_ = notifier.NotifyTranscriptionCompleted(cmd.Context(), record.DisplayName())

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Transcribed %s (id %s, %s)\n", record.DisplayName(), record.ID, record.Size)
				if !quiet && record.Text != "" {
					fmt.Fprintln(out)
					fmt.Fprintln(out, record.Text)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress transcription text output")
	return cmd
}
