package runner

import (
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/software-mansion/casm-test-runner/logging"
)

// ansiRegex strips the color codes the formatters bake into rendered lines, so assertions can match plain text.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// newCapturedPrinter builds a ConsolePrinter whose logger writes into an in-memory buffer, so tests can assert
// on the rendered output without touching the console.
func newCapturedPrinter(t *testing.T) (*ConsolePrinter, *logging.LogBufferWriter) {
	t.Helper()
	capture := logging.NewLogBufferWriter(32)
	logger := logging.NewLogger(zerolog.InfoLevel, false)
	logger.AddWriter(capture, logging.UNSTRUCTURED)
	return NewConsolePrinter(logger), capture
}

func capturedOutput(capture *logging.LogBufferWriter) string {
	var all string
	for _, entry := range capture.GetAllEntries() {
		all += entry.Message
	}
	return ansiRegex.ReplaceAllString(all, "")
}

func TestConsolePrinter_PrintCasePassed(t *testing.T) {
	printer, capture := newCapturedPrinter(t)

	printer.PrintCase(CaseOutcome{Kind: Passed, Name: "t1", GasUsed: 42})

	out := capturedOutput(capture)
	assert.Contains(t, out, "[PASSED]")
	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "gas: 42")
}

func TestConsolePrinter_PrintCaseFuzzed(t *testing.T) {
	printer, capture := newCapturedPrinter(t)
	runs := uint32(3)

	printer.PrintCase(CaseOutcome{
		Kind:      Passed,
		Name:      "t2",
		Runs:      &runs,
		GasUsages: &FuzzingGasUsage{Min: 10, Max: 12},
	})

	out := capturedOutput(capture)
	assert.Contains(t, out, "runs: 3")
	assert.Contains(t, out, "min 10")
	assert.Contains(t, out, "max 12")
}

func TestConsolePrinter_PrintCaseFailedIncludesReason(t *testing.T) {
	printer, capture := newCapturedPrinter(t)

	printer.PrintCase(CaseOutcome{Kind: Failed, Name: "t3", Reason: "assertion failed"})

	out := capturedOutput(capture)
	assert.Contains(t, out, "[FAILED]")
	assert.Contains(t, out, "assertion failed")
}

func TestConsolePrinter_PrintCrateSummary(t *testing.T) {
	printer, capture := newCapturedPrinter(t)

	printer.PrintCrateSummary(CrateRunResult{
		Kind: RunResultInterrupted,
		Summary: CrateSummary{CaseSummaries: []CaseOutcome{
			{Kind: Passed, Name: "a"},
			{Kind: Failed, Name: "b"},
			{Kind: Skipped, Name: "c"},
		}},
	})

	out := capturedOutput(capture)
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1 skipped")
	assert.Contains(t, out, "[INTERRUPTED]")
}

func TestConsolePrinter_SubscribeRendersSchedulerEvents(t *testing.T) {
	printer, capture := newCapturedPrinter(t)

	tc := deterministicCase("t1")
	details := namedDetails(nil)
	exec := newFakeExecutor()

	scheduler := NewScheduler(exec)
	printer.Subscribe(scheduler.Events())

	_, err := scheduler.RunTestsFromCrate(
		[]*TestCase{tc},
		&CompiledProgram{},
		map[string]*TestDetails{"t1": details},
		DefaultRunnerConfig(),
		&RunnerParams{},
		AcceptAllFilter,
	)
	require.NoError(t, err)

	out := capturedOutput(capture)
	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "1 passed")
}
