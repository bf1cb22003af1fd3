package logging

// These constants are used to identify the various services that may do some logging
const (
	// RUNNER_SERVICE is the constant used to identify the runner package
	RUNNER_SERVICE = "runner"
	// EXECUTION_SERVICE is the constant used to identify the execution package
	EXECUTION_SERVICE = "execution"
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
)
