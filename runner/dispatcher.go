package runner

import (
	"github.com/google/uuid"

	"github.com/software-mansion/casm-test-runner/utils"
)

// dispatchCase implements the Case Dispatcher: given one TestCase, it decides deterministic vs fuzzed path and
// runs the appropriate strategy. It never blocks the Scheduler's admission loop beyond the synchronous work of the
// chosen path itself; the Scheduler calls it from within its own per-case goroutine.
func dispatchCase(
	adapter *ExecutorAdapter,
	tc *TestCase,
	program *CompiledProgram,
	details *TestDetails,
	runnerConfig *RunnerConfig,
	params *RunnerParams,
	outerDone <-chan struct{},
) CaseOutcome {
	outcome := routeCase(adapter, tc, program, details, runnerConfig, params, outerDone)

	// Every outcome leaving the dispatcher carries a fresh correlation id, so log consumers can tie a case's
	// emission to its summary entry across the two cancellation scopes.
	outcome.ID = uuid.New()
	return outcome
}

// routeCase decides the execution strategy for one case and runs it to a terminal outcome.
func routeCase(
	adapter *ExecutorAdapter,
	tc *TestCase,
	program *CompiledProgram,
	details *TestDetails,
	runnerConfig *RunnerConfig,
	params *RunnerParams,
	outerDone <-chan struct{},
) CaseOutcome {
	if tc.Ignored {
		return CaseOutcome{Kind: Ignored, Name: tc.Name}
	}

	select {
	case <-outerDone:
		return CaseOutcome{Kind: Skipped, Name: tc.Name}
	default:
	}

	fuzzable := fuzzableParams(details.ParameterTypes)
	if len(fuzzable) == 0 {
		return runDeterministicCase(adapter, tc, program, details, params)
	}

	argTypeNames := utils.SliceSelect(fuzzable, func(p ParamType) string {
		return genericTypeName(p.GenericTypeID)
	})
	return runFuzzCampaign(adapter, tc, program, details, runnerConfig, params, argTypeNames, outerDone)
}

// runDeterministicCase runs a single, argument-less execution for a case whose effective parameter list (after
// builtin stripping) is empty.
func runDeterministicCase(adapter *ExecutorAdapter, tc *TestCase, program *CompiledProgram, details *TestDetails, params *RunnerParams) CaseOutcome {
	caseConfig := CaseConfig{AvailableGas: tc.AvailableGas, ForkConfig: resolveForkConfig(tc.ForkConfig)}
	outcome := adapter.Run(program, details, nil, caseConfig, params, tc.ExpectedResult)
	if !outcome.Passed {
		return CaseOutcome{Kind: Failed, Name: tc.Name, Reason: outcome.Reason}
	}
	return CaseOutcome{Kind: Passed, Name: tc.Name, GasUsed: outcome.GasUsed}
}
