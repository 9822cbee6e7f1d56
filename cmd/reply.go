package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/observer"
	"github.com/bnema/smartplace-reply-cli/internal/application"
	"github.com/spf13/cobra"
)

func newReplyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reply",
		Short: "Work with generated replies",
	}

	cmd.AddCommand(newReplyPreviewCmd(app))

	return cmd
}

func newReplyPreviewCmd(app *app) *cobra.Command {
	var (
		text      string
		author    string
		showInput bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draft a reply for a review text without touching SmartPlace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(text) == "" {
				return errors.New("--text must not be empty")
			}

			provider, err := app.provider()
			if err != nil {
				return err
			}
			cfg := app.replyConfig(provider)

			if showInput {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), application.BuildReplyPrompt(text, author, cfg))
				return nil
			}

			generator, err := app.textGenerator(cmd.Context())
			if err != nil {
				return err
			}
			if generator == nil {
				return fmt.Errorf("%w: run `spr apikey set --provider %s` or set %s", errNoAPIKey, provider, provider.EnvVar())
			}

			reply, err := application.NewReplyGenerator(generator, app.clock, observer.NewLogger(app.logger)).
				GenerateOne(cmd.Context(), text, author, cfg)
			if err != nil {
				return fmt.Errorf("generate reply: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Review text to answer")
	cmd.Flags().StringVar(&author, "author", "", "Reviewer display name")
	cmd.Flags().BoolVar(&showInput, "prompt-only", false, "Print the prompt instead of calling the model")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
