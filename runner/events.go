package runner

import "github.com/software-mansion/casm-test-runner/events"

// CaseCompletedEvent is published (fire-and-forget) by the Crate Scheduler immediately before a completed
// CaseOutcome is appended to the running result set.
type CaseCompletedEvent struct {
	Outcome CaseOutcome
}

// CrateCompletedEvent is published once, after the Crate Scheduler has drained every completion and built the
// final CrateSummary.
type CrateCompletedEvent struct {
	Result CrateRunResult
}

// schedulerEvents bundles the emitters a Scheduler publishes to. Subscribers (e.g. the default ConsolePrinter, or
// any other collaborator) attach via Subscribe on the relevant emitter.
type schedulerEvents struct {
	CaseCompleted  events.EventEmitter[CaseCompletedEvent]
	CrateCompleted events.EventEmitter[CrateCompletedEvent]
}
