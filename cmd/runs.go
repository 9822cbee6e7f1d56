package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/render/report"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newRunsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded runs",
	}

	cmd.AddCommand(
		newRunsListCmd(app),
		newRunsShowCmd(app),
	)

	return cmd
}

func newRunsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := app.runs.List(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := app.runsRenderer(summaries, report.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render runs: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newRunsShowCmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.runs.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch format {
			case formatText:
				return writeRunReport(cmd, app, summary)
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(exportRun(summary))
			case formatYAML:
				return writeYAML(cmd.OutOrStdout(), exportRun(summary))
			default:
				return fmt.Errorf("unsupported format %q (want %s, %s or %s)", format, formatText, formatJSON, formatYAML)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")

	return cmd
}

type runExport struct {
	ID         string        `json:"id" yaml:"id"`
	State      string        `json:"state" yaml:"state"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at,omitzero" yaml:"finished_at,omitempty"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Stores     []storeExport `json:"stores" yaml:"stores"`
}

type storeExport struct {
	BookingBusinessID string `json:"booking_business_id" yaml:"booking_business_id"`
	PlaceID           string `json:"place_id,omitempty" yaml:"place_id,omitempty"`
	PlaceSeq          string `json:"place_seq,omitempty" yaml:"place_seq,omitempty"`
	ReviewURL         string `json:"review_url,omitempty" yaml:"review_url,omitempty"`
	Status            string `json:"status" yaml:"status"`
	Reviews           int    `json:"reviews" yaml:"reviews"`
	Drafts            int    `json:"drafts" yaml:"drafts"`
	DraftsFailed      int    `json:"drafts_failed" yaml:"drafts_failed"`
	Submitted         int    `json:"submitted" yaml:"submitted"`
	SubmitFailed      int    `json:"submit_failed" yaml:"submit_failed"`
	Error             string `json:"error,omitempty" yaml:"error,omitempty"`
}

func exportRun(summary domain.RunSummary) runExport {
	out := runExport{
		ID:         summary.ID,
		State:      summary.State.String(),
		StartedAt:  summary.StartedAt.UTC(),
		FinishedAt: summary.FinishedAt.UTC(),
		Error:      summary.Error,
		Stores:     make([]storeExport, 0, len(summary.Stores)),
	}
	for _, store := range summary.Stores {
		out.Stores = append(out.Stores, storeExport{
			BookingBusinessID: store.BookingBusinessID,
			PlaceID:           store.PlaceID,
			PlaceSeq:          store.PlaceSeq,
			ReviewURL:         store.ReviewURL,
			Status:            string(store.Status),
			Reviews:           store.ReviewCount,
			Drafts:            store.DraftCount,
			DraftsFailed:      store.DraftFailedCount,
			Submitted:         store.SubmittedCount,
			SubmitFailed:      store.SubmitFailedCount,
			Error:             store.Error,
		})
	}

	return out
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}
