package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/application"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/spf13/cobra"
)

var passwordEnvVars = []string{"SPR_NAVER_PASSWORD", "NAVER_USER_PASSWORD"}

func newLoginCmd(app *app) *cobra.Command {
	var (
		userID        string
		passwordStdin bool
		fresh         bool
		visible       bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log into Naver and store the session",
		Long:  "login reuses the stored session when Naver still accepts it and otherwise signs in with the Naver id and password. The password is read from --password-stdin or the SPR_NAVER_PASSWORD environment variable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := resolvePassword(cmd.InOrStdin(), passwordStdin, app.lookupEnv)
			if err != nil {
				return err
			}

			creds := domain.Credentials{UserID: strings.TrimSpace(userID), Password: password}
			if fresh {
				if err := creds.Validate(); err != nil {
					return fmt.Errorf("fresh login: %w", err)
				}
			}

			status, err := app.serviceFor(visible).Login(cmd.Context(), application.LoginCommand{
				Credentials: creds,
				Fresh:       fresh,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in (cookies: %d, csrf token: %s)\n", status.CookieCount, yesNo(status.HasCSRFToken))
			if !status.HasCSRFToken {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Warning: no csrf token was found; reply submission will fail until the next login.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", app.cfg.UserID, "Naver user id")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the Naver password from stdin")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the stored session and sign in with credentials")
	cmd.Flags().BoolVar(&visible, "visible", app.cfg.Browser.Visible, "Show the browser window")

	return cmd
}

func resolvePassword(stdin io.Reader, fromStdin bool, lookupEnv func(string) (string, bool)) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	for _, key := range passwordEnvVars {
		if value, ok := lookupEnv(key); ok && value != "" {
			return value, nil
		}
	}

	return "", nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
