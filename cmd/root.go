package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	rootCmd := &cobra.Command{
		Use:           "spr",
		Short:         "SmartPlace Reply CLI (spr): answer Naver SmartPlace reviews",
		Long:          "spr logs into Naver SmartPlace, collects unanswered customer reviews, drafts replies with a language model and optionally posts them back.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	app, err := wireApp(level)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if verbose {
			level.SetLevel(zapcore.DebugLevel)
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newSessionCmd(app),
		newStoresCmd(app),
		newReviewsCmd(app),
		newReplyCmd(app),
		newRunCmd(app),
		newRunsCmd(app),
		newAPIKeyCmd(app),
	)

	return rootCmd
}
