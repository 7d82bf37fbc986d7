// Package cli provides the command-line interface for conlog.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanac/conlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand())
}

func run(rootCmd *cobra.Command) int {
	commands.ExitCode = 0
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this.
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration, transport or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conlog",
		Short: "Report convention-publication uploads from the ConEditor log",
		Long: `conlog reads the ConEditor upload log, keeps the additions made since the
last run, and writes per-editor activity reports: item counts by series and
by instance, a full detail listing, and two HTML detail reports.

The time of the last run (the watermark) is kept in a text file so each run
reports only what is new.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewWatermarkCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
