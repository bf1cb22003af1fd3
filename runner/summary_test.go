package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCrateSummary_AllPassedIsDefault(t *testing.T) {
	runs := uint32(3)
	outcomes := []CaseOutcome{
		{Kind: Passed, Name: "a"},
		{Kind: Passed, Name: "b", Runs: &runs},
	}
	summary := buildCrateSummary(outcomes)
	assert.Equal(t, StatusDefault, summary.Status)
	assert.True(t, summary.ContainedFuzzedTests)
}

func TestBuildCrateSummary_AnyFailedIsTestFailed(t *testing.T) {
	outcomes := []CaseOutcome{
		{Kind: Passed, Name: "a"},
		{Kind: Failed, Name: "b", Reason: "bad"},
	}
	summary := buildCrateSummary(outcomes)
	assert.Equal(t, StatusTestFailed, summary.Status)
}

func TestBuildCrateSummary_OnlyIgnoredOrSkippedIsDidNotRun(t *testing.T) {
	outcomes := []CaseOutcome{
		{Kind: Ignored, Name: "a"},
		{Kind: Skipped, Name: "b"},
	}
	summary := buildCrateSummary(outcomes)
	assert.Equal(t, StatusDidNotRun, summary.Status)
}

func TestBuildCrateSummary_Empty(t *testing.T) {
	summary := buildCrateSummary(nil)
	assert.Equal(t, StatusDidNotRun, summary.Status)
	assert.False(t, summary.ContainedFuzzedTests)
	assert.Empty(t, summary.CaseSummaries)
}
