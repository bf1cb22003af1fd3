package runner

import "strings"

// SingleRunOutcome is the result of one single-shot execution, as reported by the external CaseExecutor
// collaborator. It is intentionally narrower than CaseOutcome: it carries no knowledge of expected_result,
// fuzzing, or cancellation.
type SingleRunOutcome struct {
	Passed  bool
	GasUsed uint64
	Reason  string
}

// CaseConfig is the opaque per-run input handed to CaseExecutor, carrying the case-level knobs that are out of
// scope for this engine to interpret (gas budget, fork target) but must still reach the executor.
type CaseConfig struct {
	AvailableGas *uint64
	ForkConfig   *ValidatedForkConfig
}

// CaseExecutor is the external, opaque collaborator that performs one single-shot execution of one test case with
// one argument tuple. It is synchronous-blocking; callers must offload to a blocking-capable worker (an ordinary
// goroutine, on the Go runtime).
type CaseExecutor interface {
	ExecuteSingle(program *CompiledProgram, details *TestDetails, args []any, config CaseConfig, params *RunnerParams) (SingleRunOutcome, error)
}

// ExecutorAdapter wraps a CaseExecutor, translating its result (plus the case's ExpectedResult) into a
// SingleRunOutcome-shaped decision the Dispatcher and Campaign Driver can consume without ever looking at
// expected_result themselves.
//
// This is the single site, by design, where PanicWith-vs-Success inversion is decided: the source specification
// leaves the site unspecified, so classification happens here and nowhere else in the pipeline.
type ExecutorAdapter struct {
	executor CaseExecutor
}

// NewExecutorAdapter wraps executor.
func NewExecutorAdapter(executor CaseExecutor) *ExecutorAdapter {
	return &ExecutorAdapter{executor: executor}
}

// Run executes one single run and classifies it against expected, returning a decision already resolved against
// the case's expectation.
func (a *ExecutorAdapter) Run(program *CompiledProgram, details *TestDetails, args []any, config CaseConfig, params *RunnerParams, expected ExpectedResult) SingleRunOutcome {
	result, err := a.executor.ExecuteSingle(program, details, args, config, params)
	if err != nil {
		wrapped := newExecutorError(err)
		return SingleRunOutcome{Passed: false, Reason: wrapped.Error()}
	}

	switch expected.Kind {
	case ExpectPanicWith:
		// A PanicWith case is only a Pass if the executor's single run failed (panicked) with one of the
		// expected messages. Any other observed panic message, or an observed success, is a failure.
		if result.Passed {
			return SingleRunOutcome{Passed: false, GasUsed: result.GasUsed, Reason: "expected a panic but the run succeeded"}
		}
		if !matchesAnyMessage(result.Reason, expected.Messages) {
			return SingleRunOutcome{Passed: false, GasUsed: result.GasUsed, Reason: result.Reason}
		}
		return SingleRunOutcome{Passed: true, GasUsed: result.GasUsed}
	default:
		return result
	}
}

// matchesAnyMessage reports whether reason contains any of the expected substrings. An empty expectation list
// matches any panic, mirroring "PanicWith with no messages means any panic is acceptable".
func matchesAnyMessage(reason string, messages []string) bool {
	if len(messages) == 0 {
		return true
	}
	for _, m := range messages {
		if strings.Contains(reason, m) {
			return true
		}
	}
	return false
}
