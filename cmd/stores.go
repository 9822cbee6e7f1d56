package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStoresCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "Look up SmartPlace stores",
	}

	cmd.AddCommand(newStoresResolveCmd(app))

	return cmd
}

func newStoresResolveCmd(app *app) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "resolve <business-id>...",
		Short: "Map booking business ids to SmartPlace place ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := domain.NormalizeBusinessIDs(args)
			if len(ids) == 0 {
				return errors.New("no business ids given")
			}

			api, err := app.places.OpenPlaceAPI(cmd.Context())
			if err != nil {
				return err
			}
			defer api.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "BUSINESS ID\tPLACE ID\tPLACE SEQ\tREVIEWS")

			var failures []error
			for _, id := range ids {
				store, err := api.ResolveStore(cmd.Context(), id, userID)
				if err != nil {
					failures = append(failures, fmt.Errorf("resolve %s: %w", id, err))
					_, _ = fmt.Fprintf(w, "%s\t-\t-\t-\n", id)
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", store.BookingBusinessID, store.PlaceID, store.PlaceSeq, api.ReviewURL(store))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			return errors.Join(failures...)
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", app.cfg.UserID, "Naver user id sent as x-naver-id")

	return cmd
}
