package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchCase_IgnoredNeverInvokesExecutor(t *testing.T) {
	exec := &scriptedExecutor{}
	adapter := NewExecutorAdapter(exec)
	tc := &TestCase{Name: "a", Ignored: true}
	details := &TestDetails{}
	outerDone := make(chan struct{})

	outcome := dispatchCase(adapter, tc, &CompiledProgram{}, details, DefaultRunnerConfig(), &RunnerParams{}, outerDone)

	assert.Equal(t, Ignored, outcome.Kind)
	assert.EqualValues(t, 0, exec.calls)
}

func TestDispatchCase_EmptySignatureTakesDeterministicPath(t *testing.T) {
	exec := &scriptedExecutor{}
	adapter := NewExecutorAdapter(exec)
	tc := &TestCase{Name: "a", ExpectedResult: ExpectedResult{Kind: ExpectSuccess}}
	details := &TestDetails{ParameterTypes: []ParamType{{GenericTypeID: "core::starknet::System"}}}
	outerDone := make(chan struct{})

	outcome := dispatchCase(adapter, tc, &CompiledProgram{}, details, DefaultRunnerConfig(), &RunnerParams{}, outerDone)

	assert.Equal(t, Passed, outcome.Kind)
	assert.Nil(t, outcome.Runs)
	assert.EqualValues(t, 1, exec.calls)
}

func TestDispatchCase_NonEmptySignatureTakesFuzzPath(t *testing.T) {
	exec := &scriptedExecutor{}
	adapter := NewExecutorAdapter(exec)
	tc := &TestCase{Name: "a", ExpectedResult: ExpectedResult{Kind: ExpectSuccess}, FuzzerConfig: &FuzzerConfig{Runs: 4, Seed: 1}}
	details := &TestDetails{ParameterTypes: []ParamType{{GenericTypeID: "core::integer::u32"}}}
	outerDone := make(chan struct{})

	outcome := dispatchCase(adapter, tc, &CompiledProgram{}, details, DefaultRunnerConfig(), &RunnerParams{}, outerDone)

	assert.Equal(t, Passed, outcome.Kind)
	if assert.NotNil(t, outcome.Runs) {
		assert.EqualValues(t, 4, *outcome.Runs)
	}
}

func TestDispatchCase_OuterCancellationSkipsBeforeDispatch(t *testing.T) {
	exec := &scriptedExecutor{}
	adapter := NewExecutorAdapter(exec)
	tc := &TestCase{Name: "a", ExpectedResult: ExpectedResult{Kind: ExpectSuccess}}
	details := &TestDetails{}
	outerDone := make(chan struct{})
	close(outerDone)

	outcome := dispatchCase(adapter, tc, &CompiledProgram{}, details, DefaultRunnerConfig(), &RunnerParams{}, outerDone)

	assert.Equal(t, Skipped, outcome.Kind)
	assert.EqualValues(t, 0, exec.calls)
}
