package runner

// RunnerStatus classifies a CrateSummary's overall result.
type RunnerStatus int

const (
	// StatusDefault means every case either passed, was ignored, or was skipped, and at least one case ran.
	StatusDefault RunnerStatus = iota
	// StatusTestFailed means at least one Failed outcome is present in the summary.
	StatusTestFailed
	// StatusDidNotRun means no case produced a terminal outcome (e.g. an empty crate).
	StatusDidNotRun
)

// CrateSummary is the aggregated result of running every scheduled case in one compiled test crate.
type CrateSummary struct {
	// CaseSummaries is ordered by completion time, not input order.
	CaseSummaries        []CaseOutcome
	ContainedFuzzedTests bool
	Status               RunnerStatus
}

// CrateRunResultKind discriminates whether a crate run completed normally or was interrupted by exit-first or by
// Scheduler.Stop.
type CrateRunResultKind int

const (
	RunResultOk CrateRunResultKind = iota
	RunResultInterrupted
)

// CrateRunResult is the top-level return value of RunTestsFromCrate.
type CrateRunResult struct {
	Kind    CrateRunResultKind
	Summary CrateSummary
}

// buildCrateSummary derives a CrateSummary's aggregate fields from its ordered case outcomes.
func buildCrateSummary(outcomes []CaseOutcome) CrateSummary {
	summary := CrateSummary{CaseSummaries: outcomes, Status: StatusDidNotRun}

	ran := false
	for _, o := range outcomes {
		if o.Runs != nil {
			summary.ContainedFuzzedTests = true
		}
		switch o.Kind {
		case Passed, Failed:
			ran = true
		}
		if o.Kind == Failed {
			summary.Status = StatusTestFailed
		}
	}

	if ran && summary.Status != StatusTestFailed {
		summary.Status = StatusDefault
	}
	return summary
}
