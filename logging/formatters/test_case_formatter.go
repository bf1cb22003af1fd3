package formatters

import (
	"regexp"

	"github.com/software-mansion/casm-test-runner/logging/colors"
)

// TestCaseFormatter colorizes the fixed outcome markers ([PASSED], [FAILED], [IGNORED], [SKIPPED]) that the default
// Printer embeds in a case outcome line, for console output.
func TestCaseFormatter(fields map[string]any, msg string) string {
	var re *regexp.Regexp

	// Colorize [PASSED]
	re = regexp.MustCompile(passedRegex)
	msg = re.ReplaceAllString(msg, colors.Colorize(colors.Colorize(`$1`, passedColor), colors.BOLD))

	// Colorize [FAILED]
	re = regexp.MustCompile(failedRegex)
	msg = re.ReplaceAllString(msg, colors.Colorize(colors.Colorize(`$1`, failedColor), colors.BOLD))

	// Colorize [IGNORED]
	re = regexp.MustCompile(ignoredRegex)
	msg = re.ReplaceAllString(msg, colors.Colorize(colors.Colorize(`$1`, ignoredColor), colors.BOLD))

	// Colorize [SKIPPED]
	re = regexp.MustCompile(skippedRegex)
	msg = re.ReplaceAllString(msg, colors.Colorize(colors.Colorize(`$1`, skippedColor), colors.BOLD))

	return msg
}
