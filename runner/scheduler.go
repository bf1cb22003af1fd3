package runner

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Scheduler is the Crate Scheduler: it owns the outer cancellation scope for one compiled test crate and fans a
// task out per admitted TestCase, bounded by RunnerConfig.MaxConcurrency.
type Scheduler struct {
	adapter *ExecutorAdapter
	events  schedulerEvents

	// stop is closed by Stop. It feeds the outer cancellation channel of any in-flight crate run, so an external
	// caller (e.g. a CLI signal handler) can wind a run down cooperatively.
	stop     chan struct{}
	stopOnce sync.Once
}

// NewScheduler constructs a Scheduler around the given CaseExecutor, with its event emitters ready to accept
// subscribers before any run starts. The executor is the caller's concrete Cairo/Sierra execution backend; the
// Scheduler never constructs one itself.
func NewScheduler(executor CaseExecutor) *Scheduler {
	return &Scheduler{adapter: NewExecutorAdapter(executor), stop: make(chan struct{})}
}

// Stop requests cooperative cancellation of the current (or a subsequent) RunTestsFromCrate call. Cases already
// inside the blocking executor run to completion; everything not yet started self-classifies as Skipped and the
// crate run returns an Interrupted result. Stop is one-shot: a stopped Scheduler does not admit further runs.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// stopRequested reports whether Stop has been called.
func (s *Scheduler) stopRequested() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// Events exposes the Scheduler's emitters so a Printer or other collaborator can subscribe before RunTestsFromCrate
// is called. Subscribing after a run has started may miss earlier completions.
func (s *Scheduler) Events() *schedulerEvents {
	return &s.events
}

// RunTestsFromCrate runs every test case in tests against one already-compiled program, returning once every
// admitted case has reached a terminal outcome or the crate run was interrupted by exit-first.
//
// Cases that filter rejects are never dispatched and never appear in the returned summary.
func (s *Scheduler) RunTestsFromCrate(
	tests []*TestCase,
	program *CompiledProgram,
	testDetails map[string]*TestDetails,
	config *RunnerConfig,
	params *RunnerParams,
	filter TestCaseFilter,
) (CrateRunResult, error) {
	if filter == nil {
		filter = AcceptAllFilter
	}

	var admitted []*TestCase
	for _, tc := range tests {
		if filter.ShouldBeRun(tc) {
			admitted = append(admitted, tc)
		}
	}

	// outerDone is the crate-level cancellation channel. It is closed at most once, on the first Failed outcome
	// when config.ExitFirst is set, and is observed by every in-flight case/campaign goroutine.
	outerDone := make(chan struct{})
	var closeOuterOnce sync.Once
	closeOuter := func() { closeOuterOnce.Do(func() { close(outerDone) }) }

	// A Stop request (already pending or arriving mid-run) closes the outer channel the same way exit-first does.
	if s.stopRequested() {
		closeOuter()
	}
	runDone := make(chan struct{})
	defer close(runDone)
	go func() {
		select {
		case <-s.stop:
			closeOuter()
		case <-runDone:
		}
	}()

	type completion struct {
		index   int
		outcome CaseOutcome
	}
	completions := make(chan completion, len(admitted))

	sem := newSemaphore(config.MaxConcurrency)

	// Admission itself runs on its own goroutine, acquiring sem slots strictly in admitted order: the i-th case's
	// task is never spawned before the (i-1)-th has been admitted. sem.release() is deliberately called by the
	// drain loop below, after that completion's exit-first decision, not by the task goroutine itself. Together
	// these guarantee a failed case's outerDone close always happens-before the next queued task is admitted, so a
	// MaxConcurrency-bounded exit-first run is deterministic rather than racing task scheduling.
	var group errgroup.Group
	go func() {
		for i, tc := range admitted {
			i, tc := i, tc
			sem.acquire()
			group.Go(func() error {
				details, ok := testDetails[tc.Name]
				if !ok {
					completions <- completion{index: i, outcome: CaseOutcome{Kind: Failed, Name: tc.Name, ID: uuid.New(), Reason: "no compiled test details for case"}}
					return nil
				}

				outcome := dispatchCase(s.adapter, tc, program, details, config, params, outerDone)
				completions <- completion{index: i, outcome: outcome}
				return nil
			})
		}
		_ = group.Wait()
		close(completions)
	}()

	interrupted := false
	outcomes := make([]CaseOutcome, 0, len(admitted))
	for c := range completions {
		s.events.CaseCompleted.Publish(CaseCompletedEvent{Outcome: c.outcome})
		outcomes = append(outcomes, c.outcome)

		if c.outcome.Kind == Failed && config.ExitFirst {
			interrupted = true
			closeOuter()
		}
		sem.release()
	}

	summary := buildCrateSummary(outcomes)
	kind := RunResultOk
	if interrupted || s.stopRequested() {
		kind = RunResultInterrupted
	}
	result := CrateRunResult{Kind: kind, Summary: summary}
	s.events.CrateCompleted.Publish(CrateCompletedEvent{Result: result})
	return result, nil
}

// semaphore bounds concurrent admission to RunnerConfig.MaxConcurrency. A zero-capacity semaphore never blocks,
// matching DefaultRunnerConfig's unbounded default.
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(max int) *semaphore {
	if max <= 0 {
		return &semaphore{}
	}
	return &semaphore{slots: make(chan struct{}, max)}
}

func (s *semaphore) acquire() {
	if s.slots != nil {
		s.slots <- struct{}{}
	}
}

func (s *semaphore) release() {
	if s.slots != nil {
		<-s.slots
	}
}
