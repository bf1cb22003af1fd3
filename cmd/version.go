package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print detailed version and build information for casm-test-runner.

This includes the semantic version and the Go version used to compile
the binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("casm-test-runner version %s (%s)\n", version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
