package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "casm-test-runner.json"

// DefaultExecutionBackend describes the default execution backend to use if one is not provided
const DefaultExecutionBackend = "subprocess"
