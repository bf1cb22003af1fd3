package cmd

import (
	"github.com/rs/zerolog"
	"github.com/software-mansion/casm-test-runner/logging"
	"github.com/spf13/cobra"
	"io"
)

const version = "0.1.0"

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:     "casm-test-runner",
	Version: version,
	Short:   "A parallel execution engine for compiled Cairo/Sierra test crates",
	Long:    "casm-test-runner schedules and fuzzes test cases from a compiled Cairo/Sierra test crate",
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true, make([]io.Writer, 0)...)

// Execute provides an exportable function to invoke the CLI.
// Returns an error if one was encountered.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}
