package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var errSessionRejected = errors.New("stored session was rejected; run `spr login`")

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the stored Naver session",
	}

	cmd.AddCommand(
		newSessionShowCmd(app),
		newSessionCheckCmd(app),
		newSessionClearCmd(app),
	)

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show what is stored for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.service.SessionStatus(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}

			out := cmd.OutOrStdout()
			if !status.Present {
				_, _ = fmt.Fprintln(out, "session: none")
				_, _ = fmt.Fprintln(out, "Run `spr login` to create one.")
				return nil
			}

			_, _ = fmt.Fprintln(out, "session: stored")
			_, _ = fmt.Fprintf(out, "cookies: %d\n", status.CookieCount)
			_, _ = fmt.Fprintf(out, "csrf token: %s\n", yesNo(status.HasCSRFToken))
			if !status.SavedAt.IsZero() {
				_, _ = fmt.Fprintf(out, "saved: %s (%s ago)\n", status.SavedAt.Local().Format(time.DateTime), status.Age.Truncate(time.Second))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionCheckCmd(app *app) *cobra.Command {
	var visible bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Open the browser and verify Naver still accepts the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := app.browserFor(visible).CheckSession(cmd.Context())
			if err != nil {
				return fmt.Errorf("check session: %w", err)
			}
			if !ok {
				return errSessionRejected
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Session is valid.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&visible, "visible", app.cfg.Browser.Visible, "Show the browser window")

	return cmd
}

func newSessionClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.ClearSession(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
			return nil
		},
	}
}
