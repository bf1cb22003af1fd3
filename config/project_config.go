package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/software-mansion/casm-test-runner/execution"
	"github.com/software-mansion/casm-test-runner/runner"
)

// ProjectConfig is the top-level, JSON-file-backed configuration consumed by the CLI. It bundles the engine's
// RunnerConfig/RunnerParams with the execution backend choice and the compiled crate artifact to run.
type ProjectConfig struct {
	// CrateArtifact is the path of the compiled test crate artifact produced by the sibling build tool.
	CrateArtifact string `json:"crate_artifact"`

	// Runner describes the scheduling and fuzzing configuration used for crate runs.
	Runner runner.RunnerConfig `json:"runner"`

	// Params describes the inputs shared read-only by every task in a crate run.
	Params runner.RunnerParams `json:"params"`

	// Execution describes the backend that performs the actual single-shot runs.
	Execution execution.ExecutionConfig `json:"execution"`
}

// GetDefaultProjectConfig obtains a default project configuration for the provided execution backend.
func GetDefaultProjectConfig(backend string) (*ProjectConfig, error) {
	executionConfig, err := execution.GetDefaultExecutionConfig(backend)
	if err != nil {
		return nil, err
	}

	return &ProjectConfig{
		Runner:    *runner.DefaultRunnerConfig(),
		Params:    runner.RunnerParams{},
		Execution: *executionConfig,
	}, nil
}

// ReadProjectConfigFromFile reads a ProjectConfig from the provided path, overlaying the file's contents on the
// defaults for the provided execution backend, then validates the result.
func ReadProjectConfigFromFile(path string, backend string) (*ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read project config file")
	}

	projectConfig, err := GetDefaultProjectConfig(backend)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, projectConfig); err != nil {
		return nil, errors.Wrap(err, "failed to parse project config file")
	}

	if err := projectConfig.Validate(); err != nil {
		return nil, err
	}
	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
func (p *ProjectConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate validates that the ProjectConfig meets certain requirements.
func (p *ProjectConfig) Validate() error {
	if p.Runner.FuzzerRuns == 0 {
		return errors.New("project configuration must specify a positive number of fuzzer runs")
	}
	if p.Runner.MaxConcurrency < 0 {
		return errors.New("project configuration must specify a nonnegative concurrency limit")
	}
	if !execution.IsSupportedExecutionBackend(p.Execution.Backend) {
		return errors.Errorf("project configuration names unsupported execution backend '%s'", p.Execution.Backend)
	}
	return nil
}
