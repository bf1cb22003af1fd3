package runner

import (
	"encoding/json"
	"os"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// RunnerConfig is immutable after construction.
type RunnerConfig struct {
	WorkspaceRoot string `json:"workspace_root"`
	ExitFirst     bool   `json:"exit_first"`
	FuzzerRuns    uint32 `json:"fuzzer_runs"`
	FuzzerSeed    uint64 `json:"fuzzer_seed"`

	// MaxConcurrency bounds the number of case goroutines the Scheduler admits at once. The runs spawned inside a
	// fuzz campaign are not counted against it. Zero means unbounded, matching the original's behavior of spawning
	// one task per run with no cap.
	MaxConcurrency int `json:"max_concurrency"`
}

// RunnerParams carries the inputs shared read-only by every task in a crate run.
type RunnerParams struct {
	CorelibPath         string            `json:"corelib_path"`
	CorelibVersionRange string            `json:"corelib_version_range"`
	Contracts           map[string]string `json:"contracts"`
	EnvironmentVars     map[string]string `json:"environment_variables"`
	LinkedLibraries     []LinkedLibrary   `json:"linked_libraries"`
}

// LinkedLibrary is one entry of RunnerParams.LinkedLibraries: a named library mapped to its on-disk path.
type LinkedLibrary struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ReadRunnerConfigFromFile reads a JSON-encoded RunnerConfig from the given path.
func ReadRunnerConfigFromFile(path string) (*RunnerConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read runner config file")
	}

	var config RunnerConfig
	if err := json.Unmarshal(b, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse runner config file")
	}
	return &config, nil
}

// DefaultRunnerConfig returns the baseline configuration used when no project config file is found.
func DefaultRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		ExitFirst:      false,
		FuzzerRuns:     256,
		FuzzerSeed:     0,
		MaxConcurrency: 0,
	}
}

// ValidateCorelibVersion checks the corelib's reported version string against RunnerParams.CorelibVersionRange
// (a semver constraint such as "^2.4.0"). An empty constraint is always satisfied.
func (p *RunnerParams) ValidateCorelibVersion(corelibVersion string) error {
	if p.CorelibVersionRange == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(p.CorelibVersionRange)
	if err != nil {
		return errors.Wrap(err, "invalid corelib version constraint")
	}

	version, err := semver.NewVersion(corelibVersion)
	if err != nil {
		return errors.Wrap(err, "invalid corelib version")
	}

	if !constraint.Check(version) {
		return errors.Errorf("corelib version %s does not satisfy constraint %s", corelibVersion, p.CorelibVersionRange)
	}
	return nil
}

// resolveFuzzerConfig overlays a case-level FuzzerConfig on top of the crate-level defaults (case-level overrides
// crate-level), per the Fuzz Campaign Driver's contract step 2.
func resolveFuzzerConfig(caseConfig *FuzzerConfig, runnerConfig *RunnerConfig) (runs uint32, seed uint64) {
	runs, seed = runnerConfig.FuzzerRuns, runnerConfig.FuzzerSeed
	if caseConfig != nil {
		runs, seed = caseConfig.Runs, caseConfig.Seed
	}
	return runs, seed
}
