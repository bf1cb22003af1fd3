package formatters

import (
	"github.com/software-mansion/casm-test-runner/logging/colors"
	"regexp"
	"strings"
)

// TestSummaryFormatter will colorize and update the format of the test summary for console output
func TestSummaryFormatter(fields map[string]any, msg string) string {
	// Use testSummaryRegex to split the summary into its integer and non-integer parts
	re := regexp.MustCompile(testSummaryRegex)
	matches := re.FindAllString(msg, -1)

	// The first index and 3rd index are the number of passed and failed tests, respectively
	matches[1] = colors.Colorize(colors.Colorize(matches[1], passedColor), colors.BOLD)
	matches[3] = colors.Colorize(colors.Colorize(matches[3], failedColor), colors.BOLD)

	// Merge the string back together
	msg = strings.Join(matches, "")

	// Colorize the crate-level [INTERRUPTED] marker, if present.
	re = regexp.MustCompile(interruptedRegex)
	msg = re.ReplaceAllString(msg, colors.Colorize(colors.Colorize(`$1`, interruptedColor), colors.BOLD))

	return msg
}
