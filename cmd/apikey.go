package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/smartplace-reply-cli/internal/application"
	"github.com/spf13/cobra"
)

func newAPIKeyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage generation API keys",
	}

	cmd.AddCommand(newAPIKeySetCmd(app), newAPIKeyClearCmd(app))

	return cmd
}

func newAPIKeySetCmd(app *app) *cobra.Command {
	var provider string
	var value string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key of a generation provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := application.ParseProvider(provider)
			if err != nil {
				return err
			}

			if fromStdin {
				raw, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 4096))
				if err != nil {
					return fmt.Errorf("read api key from stdin: %w", err)
				}
				value = string(raw)
			}

			if err := app.service.SetAPIKey(cmd.Context(), application.SetAPIKeyCommand{Provider: parsed, APIKey: value}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s api key\n", parsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", app.cfg.Reply.Provider, "Generation provider (openai|gemini)")
	cmd.Flags().StringVar(&value, "value", "", "API key value")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the API key from stdin")
	cmd.MarkFlagsMutuallyExclusive("value", "stdin")
	cmd.MarkFlagsOneRequired("value", "stdin")

	return cmd
}

func newAPIKeyClearCmd(app *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored API key of a generation provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := application.ParseProvider(provider)
			if err != nil {
				return err
			}

			if err := app.service.ClearAPIKey(cmd.Context(), application.ClearAPIKeyCommand{Provider: parsed}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s api key\n", parsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", app.cfg.Reply.Provider, "Generation provider (openai|gemini)")

	return cmd
}
