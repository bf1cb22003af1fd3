package execution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/software-mansion/casm-test-runner/runner"
)

// SubprocessBackendConfig configures the subprocess execution backend: an external single-run executor binary
// (e.g. casm-run) invoked once per run, the way an external compiler binary is invoked per compilation. The run
// request is written to the child's stdin as JSON and the run outcome is read back from its stdout.
type SubprocessBackendConfig struct {
	// Command is the executor binary to invoke.
	Command string `json:"command"`

	// Args are extra arguments passed before the compiled program path, which is always appended last.
	Args []string `json:"args"`
}

// NewSubprocessBackendConfig returns the default subprocess backend configuration for the given executor command.
func NewSubprocessBackendConfig(command string) *SubprocessBackendConfig {
	return &SubprocessBackendConfig{
		Command: command,
		Args:    []string{},
	}
}

// Backend returns the backend identifier for this configuration.
func (c *SubprocessBackendConfig) Backend() string {
	return "subprocess"
}

// NewExecutor constructs a runner.CaseExecutor that shells out to the configured command for every single run.
func (c *SubprocessBackendConfig) NewExecutor(params *runner.RunnerParams) (runner.CaseExecutor, error) {
	if c.Command == "" {
		return nil, errors.New("subprocess execution backend requires a command")
	}
	return &subprocessExecutor{config: *c}, nil
}

// subprocessExecutor implements runner.CaseExecutor by spawning one child process per run. It is
// synchronous-blocking, matching the executor contract; concurrency is the scheduler's concern.
type subprocessExecutor struct {
	config SubprocessBackendConfig
}

// runRequest is the JSON document written to the child's stdin, describing one single-shot run.
type runRequest struct {
	EntryPointOffset int               `json:"entry_point_offset"`
	Args             []string          `json:"args"`
	AvailableGas     *uint64           `json:"available_gas,omitempty"`
	Fork             *forkRequest      `json:"fork,omitempty"`
	EnvironmentVars  map[string]string `json:"environment_variables,omitempty"`
}

// forkRequest is the resolved fork target forwarded to the child, if the case declares one.
type forkRequest struct {
	URL         string  `json:"url"`
	BlockNumber *uint64 `json:"block_number,omitempty"`
	BlockHash   string  `json:"block_hash,omitempty"`
	BlockTag    string  `json:"block_tag,omitempty"`
}

// runResponse is the JSON document read from the child's stdout. A test-level failure (assertion, panic, out of
// gas) is reported here with a zero exit status; a non-zero exit status means the executor itself broke.
type runResponse struct {
	Passed  bool   `json:"passed"`
	GasUsed uint64 `json:"gas_used"`
	Reason  string `json:"reason"`
}

// ExecuteSingle implements runner.CaseExecutor.
func (e *subprocessExecutor) ExecuteSingle(program *runner.CompiledProgram, details *runner.TestDetails, args []any, config runner.CaseConfig, params *runner.RunnerParams) (runner.SingleRunOutcome, error) {
	programPath, ok := program.Code.(string)
	if !ok {
		return runner.SingleRunOutcome{}, errors.New("subprocess execution backend requires a compiled program path")
	}

	request, err := buildRunRequest(details, args, config, params)
	if err != nil {
		return runner.SingleRunOutcome{}, err
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return runner.SingleRunOutcome{}, errors.Wrap(err, "failed to encode run request")
	}

	// The program path is always the last argument, after any configured ones.
	cmd := exec.Command(e.config.Command, append(append([]string{}, e.config.Args...), programPath)...)
	cmd.Stdin = bytes.NewReader(encoded)
	cmd.Env = append(os.Environ(), environmentPairs(params)...)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return runner.SingleRunOutcome{}, errors.Errorf("executor process exited with status %d: %s", exitErr.ExitCode(), string(exitErr.Stderr))
		}
		return runner.SingleRunOutcome{}, errors.Wrap(err, "failed to invoke executor process")
	}

	var response runResponse
	if err := json.Unmarshal(out, &response); err != nil {
		return runner.SingleRunOutcome{}, errors.Wrap(err, "failed to parse executor output")
	}

	return runner.SingleRunOutcome{Passed: response.Passed, GasUsed: response.GasUsed, Reason: response.Reason}, nil
}

// buildRunRequest assembles the stdin document for one run from the shared case inputs.
func buildRunRequest(details *runner.TestDetails, args []any, config runner.CaseConfig, params *runner.RunnerParams) (*runRequest, error) {
	rendered := make([]string, len(args))
	for i, arg := range args {
		formatted, err := formatArgument(arg)
		if err != nil {
			return nil, err
		}
		rendered[i] = formatted
	}

	request := &runRequest{
		EntryPointOffset: details.EntryPointOffset,
		Args:             rendered,
		AvailableGas:     config.AvailableGas,
	}
	if config.ForkConfig != nil {
		request.Fork = &forkRequest{
			URL:         config.ForkConfig.URL,
			BlockNumber: config.ForkConfig.BlockNumber,
			BlockHash:   config.ForkConfig.BlockHash,
			BlockTag:    config.ForkConfig.BlockTag,
		}
	}
	if params != nil && len(params.EnvironmentVars) > 0 {
		request.EnvironmentVars = params.EnvironmentVars
	}
	return request, nil
}

// formatArgument renders one fuzz-generated argument as the decimal felt representation the child consumes.
func formatArgument(arg any) (string, error) {
	switch v := arg.(type) {
	case *big.Int:
		return v.String(), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	default:
		return "", errors.Errorf("unsupported argument type %T", arg)
	}
}

// environmentPairs renders RunnerParams.EnvironmentVars as KEY=VALUE pairs for the child's environment.
func environmentPairs(params *runner.RunnerParams) []string {
	if params == nil {
		return nil
	}
	pairs := make([]string, 0, len(params.EnvironmentVars))
	for k, v := range params.EnvironmentVars {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, v))
	}
	return pairs
}
