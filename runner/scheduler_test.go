package runner

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor is a CaseExecutor stand-in whose behavior per TestDetails instance is scripted by the test. It also
// records every invocation, which scenario F relies on to assert an ignored case's executor is never invoked.
type fakeExecutor struct {
	mu    sync.Mutex
	calls map[*TestDetails]int
	// behavior maps a *TestDetails to a function producing the outcome for the Nth call (1-indexed) to that case.
	behavior map[*TestDetails]func(call int) (SingleRunOutcome, error)
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{calls: make(map[*TestDetails]int), behavior: make(map[*TestDetails]func(int) (SingleRunOutcome, error))}
}

func (f *fakeExecutor) ExecuteSingle(program *CompiledProgram, details *TestDetails, args []any, config CaseConfig, params *RunnerParams) (SingleRunOutcome, error) {
	f.mu.Lock()
	f.calls[details]++
	call := f.calls[details]
	f.mu.Unlock()

	behavior, ok := f.behavior[details]
	if !ok {
		return SingleRunOutcome{Passed: true}, nil
	}
	return behavior(call)
}

func (f *fakeExecutor) callCount(details *TestDetails) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[details]
}

func namedDetails(paramTypes []ParamType) *TestDetails {
	return &TestDetails{ParameterTypes: paramTypes}
}

func deterministicCase(name string) *TestCase {
	return &TestCase{Name: name, ExpectedResult: ExpectedResult{Kind: ExpectSuccess}}
}

func TestScheduler_SingleDeterministicPass(t *testing.T) {
	tc := deterministicCase("t1")
	details := namedDetails(nil)
	exec := newFakeExecutor()
	exec.behavior[details] = func(call int) (SingleRunOutcome, error) {
		return SingleRunOutcome{Passed: true, GasUsed: 42}, nil
	}

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{tc},
		&CompiledProgram{},
		map[string]*TestDetails{"t1": details},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	assert.Equal(t, RunResultOk, result.Kind)
	require.Len(t, result.Summary.CaseSummaries, 1)
	outcome := result.Summary.CaseSummaries[0]
	assert.Equal(t, Passed, outcome.Kind)
	assert.Equal(t, "t1", outcome.Name)
	assert.EqualValues(t, 42, outcome.GasUsed)
	assert.Nil(t, outcome.Runs)
	assert.False(t, result.Summary.ContainedFuzzedTests)
	assert.Equal(t, StatusDefault, result.Summary.Status)
}

func TestScheduler_FuzzedCaseAllPass(t *testing.T) {
	tc := &TestCase{
		Name:           "t2",
		ExpectedResult: ExpectedResult{Kind: ExpectSuccess},
		FuzzerConfig:   &FuzzerConfig{Runs: 3, Seed: 7},
	}
	details := namedDetails([]ParamType{{GenericTypeID: "u32"}})
	exec := newFakeExecutor()
	exec.behavior[details] = func(call int) (SingleRunOutcome, error) {
		return SingleRunOutcome{Passed: true, GasUsed: 10}, nil
	}

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{tc},
		&CompiledProgram{},
		map[string]*TestDetails{"t2": details},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	require.Len(t, result.Summary.CaseSummaries, 1)
	outcome := result.Summary.CaseSummaries[0]
	assert.Equal(t, Passed, outcome.Kind)
	require.NotNil(t, outcome.Runs)
	assert.EqualValues(t, 3, *outcome.Runs)
	require.NotNil(t, outcome.GasUsages)
	assert.Equal(t, 10.0, outcome.GasUsages.Min)
	assert.Equal(t, 10.0, outcome.GasUsages.Max)
	assert.True(t, result.Summary.ContainedFuzzedTests)
}

func TestScheduler_FuzzedCaseFailureMidCampaign(t *testing.T) {
	tc := &TestCase{
		Name:           "t2",
		ExpectedResult: ExpectedResult{Kind: ExpectSuccess},
		FuzzerConfig:   &FuzzerConfig{Runs: 3, Seed: 7},
	}
	details := namedDetails([]ParamType{{GenericTypeID: "u32"}})
	exec := newFakeExecutor()
	exec.behavior[details] = func(call int) (SingleRunOutcome, error) {
		if call == 2 {
			return SingleRunOutcome{Passed: false, Reason: "assertion failed"}, nil
		}
		return SingleRunOutcome{Passed: true, GasUsed: 10}, nil
	}

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{tc},
		&CompiledProgram{},
		map[string]*TestDetails{"t2": details},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	require.Len(t, result.Summary.CaseSummaries, 1)
	outcome := result.Summary.CaseSummaries[0]
	assert.Equal(t, Failed, outcome.Kind)
	assert.Equal(t, StatusTestFailed, result.Summary.Status)
}

func TestScheduler_ExitFirstOnTwoCaseCrate(t *testing.T) {
	a := deterministicCase("a")
	b := deterministicCase("b")
	detailsA := namedDetails(nil)
	detailsB := namedDetails(nil)

	exec := newFakeExecutor()
	exec.behavior[detailsA] = func(call int) (SingleRunOutcome, error) {
		return SingleRunOutcome{Passed: false, Reason: "boom"}, nil
	}

	config := DefaultRunnerConfig()
	config.ExitFirst = true
	config.MaxConcurrency = 1

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{a, b},
		&CompiledProgram{},
		map[string]*TestDetails{"a": detailsA, "b": detailsB},
		config,
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	assert.Equal(t, RunResultInterrupted, result.Kind)
	require.Len(t, result.Summary.CaseSummaries, 2)

	var aOutcome, bOutcome *CaseOutcome
	for i := range result.Summary.CaseSummaries {
		o := &result.Summary.CaseSummaries[i]
		switch o.Name {
		case "a":
			aOutcome = o
		case "b":
			bOutcome = o
		}
	}
	require.NotNil(t, aOutcome)
	require.NotNil(t, bOutcome)
	assert.Equal(t, Failed, aOutcome.Kind)
	assert.Equal(t, Skipped, bOutcome.Kind)
}

func TestScheduler_FilterExcludes(t *testing.T) {
	a := deterministicCase("a")
	b := deterministicCase("b")
	detailsA := namedDetails(nil)
	detailsB := namedDetails(nil)

	exec := newFakeExecutor()
	filter := TestCaseFilterFunc(func(tc *TestCase) bool { return tc.Name != "a" })

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{a, b},
		&CompiledProgram{},
		map[string]*TestDetails{"a": detailsA, "b": detailsB},
		DefaultRunnerConfig(),
		&RunnerParams{},
		filter,
	)
	require.NoError(t, err)

	require.Len(t, result.Summary.CaseSummaries, 1)
	assert.Equal(t, "b", result.Summary.CaseSummaries[0].Name)
}

func TestScheduler_IgnoredFlag(t *testing.T) {
	a := &TestCase{Name: "a", Ignored: true, ExpectedResult: ExpectedResult{Kind: ExpectSuccess}}
	details := namedDetails(nil)
	exec := newFakeExecutor()

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{a},
		&CompiledProgram{},
		map[string]*TestDetails{"a": details},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	require.Len(t, result.Summary.CaseSummaries, 1)
	assert.Equal(t, Ignored, result.Summary.CaseSummaries[0].Kind)
	assert.Equal(t, 0, exec.callCount(details))
}

func TestScheduler_StopBeforeRunSkipsEverything(t *testing.T) {
	a := deterministicCase("a")
	b := deterministicCase("b")
	detailsA := namedDetails(nil)
	detailsB := namedDetails(nil)
	exec := newFakeExecutor()

	scheduler := NewScheduler(exec)
	scheduler.Stop()

	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{a, b},
		&CompiledProgram{},
		map[string]*TestDetails{"a": detailsA, "b": detailsB},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	assert.Equal(t, RunResultInterrupted, result.Kind)
	require.Len(t, result.Summary.CaseSummaries, 2)
	for _, o := range result.Summary.CaseSummaries {
		assert.Equal(t, Skipped, o.Kind)
	}
	assert.Equal(t, 0, exec.callCount(detailsA))
	assert.Equal(t, 0, exec.callCount(detailsB))
}

func TestScheduler_OutcomesCarryCorrelationIDs(t *testing.T) {
	tc := deterministicCase("t1")
	details := namedDetails(nil)
	exec := newFakeExecutor()

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(
		[]*TestCase{tc},
		&CompiledProgram{},
		map[string]*TestDetails{"t1": details},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)
	require.Len(t, result.Summary.CaseSummaries, 1)
	assert.NotEqual(t, uuid.Nil, result.Summary.CaseSummaries[0].ID)
}

func TestScheduler_CaseSummaryCountNeverExceedsCaseCount(t *testing.T) {
	var cases []*TestCase
	details := make(map[string]*TestDetails)
	exec := newFakeExecutor()
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("case-%d", i)
		cases = append(cases, deterministicCase(name))
		details[name] = namedDetails(nil)
	}

	scheduler := NewScheduler(exec)
	result, err := scheduler.RunTestsFromCrate(cases, &CompiledProgram{}, details, DefaultRunnerConfig(), &RunnerParams{}, AcceptAllFilter)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Summary.CaseSummaries), len(cases))
	assert.Len(t, result.Summary.CaseSummaries, len(cases))
}
