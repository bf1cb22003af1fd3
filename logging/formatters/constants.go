package formatters

import "github.com/software-mansion/casm-test-runner/logging/colors"

// The regexes below locate the fixed outcome markers emitted by the default Printer so that console output can
// highlight them without the Logger itself needing to know about outcome semantics.
const (
	// passedRegex finds [PASSED] markers in a case outcome line.
	passedRegex = `(\[PASSED\])`
	// failedRegex finds [FAILED] markers in a case outcome line.
	failedRegex = `(\[FAILED\])`
	// ignoredRegex finds [IGNORED] markers in a case outcome line.
	ignoredRegex = `(\[IGNORED\])`
	// skippedRegex finds [SKIPPED] markers in a case outcome line.
	skippedRegex = `(\[SKIPPED\])`
	// interruptedRegex finds the crate-level [INTERRUPTED] marker in a summary line.
	interruptedRegex = `(\[INTERRUPTED\])`
	// testSummaryRegex captures the integer and non-integer runs of a test summary string.
	testSummaryRegex = `([-+]?\d+|\D+)`
)

// The colors below map a specific outcome marker to the color used to render it on console.
const (
	passedColor      = colors.GREEN
	failedColor      = colors.RED
	ignoredColor     = colors.YELLOW
	skippedColor     = colors.CYAN
	interruptedColor = colors.MAGENTA
)
