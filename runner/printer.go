package runner

import (
	"fmt"

	"github.com/software-mansion/casm-test-runner/logging"
	"github.com/software-mansion/casm-test-runner/logging/colors"
	"github.com/software-mansion/casm-test-runner/logging/formatters"
)

// Printer receives case and crate outcomes as the Scheduler produces them and renders them for a user. It never
// blocks the Scheduler's drain loop on anything but its own output.
type Printer interface {
	PrintCase(outcome CaseOutcome)
	PrintCrateSummary(result CrateRunResult)
}

// ConsolePrinter is the default Printer. It renders PASSED/FAILED/IGNORED/SKIPPED case markers and a final crate
// summary line through a logging.Logger rather than writing to stdout directly, so any writers attached to the
// logger receive the same stream.
type ConsolePrinter struct {
	logger *logging.Logger
}

// NewConsolePrinter wraps logger. A nil logger falls back to the package-wide logging.GlobalLogger.
func NewConsolePrinter(logger *logging.Logger) *ConsolePrinter {
	if logger == nil {
		logger = logging.GlobalLogger
	}
	return &ConsolePrinter{logger: logger.NewSubLogger("module", logging.RUNNER_SERVICE)}
}

// Subscribe attaches this printer to a Scheduler's events, so it renders every case as it completes and the crate
// summary once the run finishes.
func (p *ConsolePrinter) Subscribe(events *schedulerEvents) {
	events.CaseCompleted.Subscribe(func(event CaseCompletedEvent) {
		p.PrintCase(event.Outcome)
	})
	events.CrateCompleted.Subscribe(func(event CrateCompletedEvent) {
		p.PrintCrateSummary(event.Result)
	})
}

// PrintCase renders one case outcome line, e.g. "[PASSED] my_test (runs: 256)".
func (p *ConsolePrinter) PrintCase(outcome CaseOutcome) {
	line := fmt.Sprintf("[%s] %s", outcome.Kind.String(), outcome.Name)
	if outcome.Kind == Passed && outcome.Runs == nil {
		line += fmt.Sprintf(" (gas: %d)", outcome.GasUsed)
	}
	if outcome.Runs != nil {
		line += fmt.Sprintf(" (runs: %d)", *outcome.Runs)
	}
	if outcome.GasUsages != nil {
		line += fmt.Sprintf(" (gas: min %.0f, max %.0f)", outcome.GasUsages.Min, outcome.GasUsages.Max)
	}
	line = formatters.TestCaseFormatter(nil, line)

	if outcome.Kind == Failed {
		buffer := logging.NewLogBuffer()
		buffer.Append(line, "\n")
		buffer.Append(colors.Red, outcome.Reason, colors.Reset)
		p.logger.Error(buffer.Args()...)
		return
	}
	p.logger.Info(line)
}

// PrintCrateSummary renders the final "Tests: N passed, M failed, I ignored, S skipped" line plus an [INTERRUPTED]
// marker when exit-first or Scheduler.Stop cut the run short.
func (p *ConsolePrinter) PrintCrateSummary(result CrateRunResult) {
	var passed, failed, ignored, skipped int
	for _, o := range result.Summary.CaseSummaries {
		switch o.Kind {
		case Passed:
			passed++
		case Failed:
			failed++
		case Ignored:
			ignored++
		case Skipped:
			skipped++
		}
	}

	line := fmt.Sprintf("Tests: %d passed, %d failed, %d ignored, %d skipped", passed, failed, ignored, skipped)
	if result.Kind == RunResultInterrupted {
		line += " [INTERRUPTED]"
	}
	p.logger.Info(formatters.TestSummaryFormatter(nil, line))
}
