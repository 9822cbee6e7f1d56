package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/observer"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/render/report"
	"github.com/bnema/smartplace-reply-cli/internal/application"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type runFlags struct {
	userID   string
	generate bool
	submit   bool
	progress bool
}

func newRunCmd(app *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [business-ids...]",
		Short: "Collect unanswered reviews and optionally draft and submit replies",
		Long:  "run resolves each booking business id, fetches its unanswered reviews, drafts replies with --generate and posts eligible drafts with --submit. Without ids the configured business_ids are used. Ctrl-C stops the run between reviews.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, app, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.userID, "user-id", app.cfg.UserID, "Naver user id sent with store lookups")
	cmd.Flags().BoolVar(&flags.generate, "generate", app.cfg.Reply.Enabled, "Draft replies with the configured language model")
	cmd.Flags().BoolVar(&flags.submit, "submit", app.cfg.Reply.AutoSubmit, "Post eligible drafts back to SmartPlace")
	cmd.Flags().BoolVar(&flags.progress, "progress", true, "Show a progress spinner on stderr")

	return cmd
}

func runPipeline(cmd *cobra.Command, app *app, args []string, flags runFlags) error {
	ids := domain.NormalizeBusinessIDs(args)
	if len(ids) == 0 {
		ids = app.cfg.BusinessIDs
	}
	if len(ids) == 0 {
		return errors.New("no business ids: pass them as arguments or set business_ids in ~/.smartplace/config.toml")
	}
	if flags.submit && !flags.generate {
		return errors.New("--submit requires --generate")
	}

	provider, err := app.provider()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	opts := []application.OrchestratorOption{
		application.WithRunRepository(app.runs),
		application.WithClock(app.clock),
		application.WithRunIDGenerator(func() string { return runID }),
	}
	if flags.generate {
		generator, err := app.textGenerator(cmd.Context())
		if err != nil {
			return fmt.Errorf("wire text generator: %w", err)
		}
		if generator != nil {
			opts = append(opts, application.WithTextGenerator(generator))
		}
	}

	runOpts := application.RunOptions{
		BusinessIDs: ids,
		UserID:      flags.userID,
		Generate:    flags.generate,
		Submit:      flags.submit,
		Reply:       app.replyConfig(provider),
	}

	signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cancel := application.NewCancellationSignal()
	stopCancel := cancel.CancelOn(signalCtx)
	defer stopCancel()

	var result domain.RunResult
	execute := func(progress ports.RunObserver) error {
		observers := []ports.RunObserver{progress}
		if progress == nil || app.logger.Core().Enabled(zapcore.DebugLevel) {
			observers = append(observers, app.runObserver(runID))
		}
		orchestrator := application.NewOrchestrator(app.places, append(opts, application.WithObserver(observer.NewFanout(observers...)))...)

		var runErr error
		result, runErr = orchestrator.Run(cmd.Context(), runOpts, cancel)
		return runErr
	}

	if flags.progress {
		err = runWithProgress(cmd.Context(), cmd.ErrOrStderr(), runLabel(runOpts), execute)
	} else {
		err = execute(nil)
	}

	if result.ID != "" {
		if renderErr := writeRunReport(cmd, app, domain.SummarizeRun(result)); renderErr != nil {
			return errors.Join(err, renderErr)
		}
	}

	return err
}

func runLabel(opts application.RunOptions) string {
	stages := []string{"fetch"}
	if opts.Generate {
		stages = append(stages, "generate")
	}
	if opts.Submit {
		stages = append(stages, "submit")
	}

	return fmt.Sprintf("Running %s for %d business(es)...", strings.Join(stages, "+"), len(opts.BusinessIDs))
}

func writeRunReport(cmd *cobra.Command, app *app, summary domain.RunSummary) error {
	rendered, err := app.runRenderer(summary, report.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render run report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
