package main

import (
	"fmt"
	"os"

	"github.com/software-mansion/casm-test-runner/cmd"
	"github.com/software-mansion/casm-test-runner/cmd/exitcodes"
)

func main() {
	// Run our root CLI command, which contains all underlying command logic and will handle parsing/invocation.
	err := cmd.Execute()

	// Determine the exit code to terminate the process with. Errors carrying a dedicated exit code (e.g. a failed
	// test case) were already rendered by the command that produced them.
	innerErr, exitCode := exitcodes.GetInnerErrorAndExitCode(err)
	if innerErr != nil && exitCode == exitcodes.ExitCodeGeneralError {
		fmt.Println(innerErr)
	}
	os.Exit(exitCode)
}
