package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/software-mansion/casm-test-runner/config"
	"github.com/software-mansion/casm-test-runner/runner"
)

// addRunFlags adds the various flags for the run command
func addRunFlags() {
	// Config file
	runCmd.Flags().String("config", "", "path to config file")

	// Compiled crate artifact
	runCmd.Flags().String("crate", "", "path to the compiled test crate artifact to run")

	// Exit-first policy
	runCmd.Flags().Bool("exit-first", false, "stop admitting new test cases after the first failure")

	// Fuzzer defaults
	runCmd.Flags().Uint32("fuzzer-runs", 0, "number of runs per fuzz campaign (overrides the config file when set)")
	runCmd.Flags().Uint64("fuzzer-seed", 0, "seed for fuzz campaigns (overrides the config file when set)")

	// Concurrency cap
	runCmd.Flags().Int("max-concurrency", 0, "maximum number of concurrently running test cases. 0 means that concurrency is not limited")

	// Name filter
	runCmd.Flags().String("filter", "", "only run test cases whose name contains the provided string")
}

// updateProjectConfigWithRunFlags will update the given projectConfig with any CLI arguments that were provided.
func updateProjectConfigWithRunFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update the crate artifact path
	if cmd.Flags().Changed("crate") {
		projectConfig.CrateArtifact, err = cmd.Flags().GetString("crate")
		if err != nil {
			return err
		}
	}

	// Update the exit-first policy
	if cmd.Flags().Changed("exit-first") {
		projectConfig.Runner.ExitFirst, err = cmd.Flags().GetBool("exit-first")
		if err != nil {
			return err
		}
	}

	// Update fuzzer runs
	if cmd.Flags().Changed("fuzzer-runs") {
		projectConfig.Runner.FuzzerRuns, err = cmd.Flags().GetUint32("fuzzer-runs")
		if err != nil {
			return err
		}
	}

	// Update fuzzer seed
	if cmd.Flags().Changed("fuzzer-seed") {
		projectConfig.Runner.FuzzerSeed, err = cmd.Flags().GetUint64("fuzzer-seed")
		if err != nil {
			return err
		}
	}

	// Update the concurrency cap
	if cmd.Flags().Changed("max-concurrency") {
		projectConfig.Runner.MaxConcurrency, err = cmd.Flags().GetInt("max-concurrency")
		if err != nil {
			return err
		}
	}

	// Re-validate after flag overlays so flag-introduced mistakes surface the same way file mistakes do.
	return projectConfig.Validate()
}

// buildCaseFilter builds the TestCaseFilter for a crate run from the --filter flag. An empty or missing flag
// admits every case.
func buildCaseFilter(cmd *cobra.Command) runner.TestCaseFilter {
	pattern, err := cmd.Flags().GetString("filter")
	if err != nil || pattern == "" {
		return runner.AcceptAllFilter
	}
	return runner.TestCaseFilterFunc(func(tc *runner.TestCase) bool {
		return strings.Contains(tc.Name, pattern)
	})
}
