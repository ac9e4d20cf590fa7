package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "qs",
		Short:         "Quota Sentinel (qs): monitor AI assistant usage quotas",
		Long:          "qs (Quota Sentinel) drives the Claude Code and Codex CLIs through a pseudo-terminal, extracts their quota usage, projects end-of-period consumption, and alerts before a budget is blown.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if verbose {
			app.log.SetLevel(logrus.DebugLevel)
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newFetchCmd(app),
		newWatchCmd(app),
		newParseCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
