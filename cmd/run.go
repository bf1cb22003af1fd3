package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/software-mansion/casm-test-runner/artifacts"
	"github.com/software-mansion/casm-test-runner/cmd/exitcodes"
	"github.com/software-mansion/casm-test-runner/config"
	"github.com/software-mansion/casm-test-runner/execution"
	"github.com/software-mansion/casm-test-runner/logging"
	"github.com/software-mansion/casm-test-runner/logging/colors"
	"github.com/software-mansion/casm-test-runner/runner"
)

// runCmd represents the command provider for running a compiled test crate
var runCmd = &cobra.Command{
	Use:               "run",
	Short:             "Runs the test cases of a compiled test crate",
	Long:              `Runs the test cases of a compiled test crate`,
	Args:              cmdValidateRunArgs,
	ValidArgsFunction: cmdValidRunArgs,
	RunE:              cmdRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the run command
	addRunFlags()

	// Add the run command and its associated flags to the root command
	rootCmd.AddCommand(runCmd)
}

// cmdValidRunArgs will return which flags and sub-commands are valid for dynamic completion for the run command
func cmdValidRunArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateRunArgs makes sure that there are no positional arguments provided to the run command
func cmdValidateRunArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("run does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the run command", err)
		return err
	}
	return nil
}

// cmdRun executes the CLI run command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (casm-test-runner.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If casm-test-runner.json can't be found, use the default project configuration.
func cmdRun(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return err
	}

	// If --config was not used, look for `casm-test-runner.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the run command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		// Try to read the configuration file and throw an error if something goes wrong
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath, DefaultExecutionBackend)
		if err != nil {
			cmdLogger.Error("Failed to run the run command", err)
			return err
		}
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed && existenceError != nil {
		cmdLogger.Error("Failed to run the run command", existenceError)
		return existenceError
	}

	// Possibility #3: --config flag was not used and casm-test-runner.json was not found, so use the default
	// project config
	if !configFlagUsed && existenceError != nil {
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration for the "+
			"%v execution backend instead", configPath, DefaultExecutionBackend))

		projectConfig, err = config.GetDefaultProjectConfig(DefaultExecutionBackend)
		if err != nil {
			cmdLogger.Error("Failed to run the run command", err)
			return err
		}
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithRunFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return err
	}

	// Change our working directory to the parent directory of the project configuration file
	// This is important as the crate artifact path may be relative to wherever the configuration is supplied from.
	err = os.Chdir(filepath.Dir(configPath))
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return err
	}

	// Load the compiled test crate artifact named by the configuration.
	if projectConfig.CrateArtifact == "" {
		err = fmt.Errorf("no compiled test crate artifact was configured; set crate_artifact in the config file or use --crate")
		cmdLogger.Error("Failed to run the run command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeRunnerError)
	}
	crate, err := artifacts.ReadCompiledTestCrateFromFile(projectConfig.CrateArtifact)
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeRunnerError)
	}

	// Validate the corelib the crate was compiled against, when the artifact reports one.
	if crate.CorelibVersion != "" {
		if err = projectConfig.Params.ValidateCorelibVersion(crate.CorelibVersion); err != nil {
			cmdLogger.Error("Failed to run the run command", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeRunnerError)
		}
	}

	// Construct the configured execution backend and the scheduler around it.
	executor, err := execution.NewExecutor(projectConfig.Execution, &projectConfig.Params)
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeRunnerError)
	}
	scheduler := runner.NewScheduler(executor)

	// Attach the default console printer so outcomes render as they complete.
	printer := runner.NewConsolePrinter(logging.NewLogger(zerolog.InfoLevel, true))
	printer.Subscribe(scheduler.Events())

	// Build the case filter from the --filter flag, if one was provided.
	filter := buildCaseFilter(cmd)

	// Stop our crate run on keyboard interrupts
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		scheduler.Stop()
	}()

	// Run every admitted case to a terminal outcome.
	result, err := scheduler.RunTestsFromCrate(
		crate.TestCases,
		crate.Program(),
		crate.TestDetails,
		&projectConfig.Runner,
		&projectConfig.Params,
		filter,
	)
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeRunnerError)
	}

	// If any case failed, we'll want to return a special exit code
	if result.Summary.Status == runner.StatusTestFailed {
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeTestFailed)
	}

	return nil
}
