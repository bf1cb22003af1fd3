package runner

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// runResult is one fuzz run's terminal classification, tagged with its spawn-time run index so the campaign can
// resolve the "final outcome" deterministically rather than relying on goroutine arrival order.
type runResult struct {
	index   uint32
	outcome SingleRunOutcome
	skipped bool
}

// runFuzzCampaign is the Fuzz Campaign Driver: for one property-based case, it spawns runs concurrent single-run
// tasks seeded by a Fuzzer, honors inner cancellation on the first failure, and aggregates per-run outcomes into
// one CaseOutcome plus gas statistics.
func runFuzzCampaign(
	adapter *ExecutorAdapter,
	tc *TestCase,
	program *CompiledProgram,
	details *TestDetails,
	runnerConfig *RunnerConfig,
	params *RunnerParams,
	argTypeNames []string,
	outerDone <-chan struct{},
) CaseOutcome {
	// Step 1: outer cancellation already closed before the campaign even starts.
	select {
	case <-outerDone:
		return CaseOutcome{Kind: Skipped, Name: tc.Name}
	default:
	}

	// Step 2: resolve (runs, seed) by overlaying case-level config on the crate-level default.
	runs, seed := resolveFuzzerConfig(tc.FuzzerConfig, runnerConfig)

	// Step 3: construct the Fuzzer and the inner ("campaign") cancellation channel.
	fuzzer, err := NewFuzzer(seed, runs, argTypeNames)
	if err != nil {
		return CaseOutcome{Kind: Failed, Name: tc.Name, Reason: err.Error()}
	}
	campaignDone := make(chan struct{})
	var closeCampaignOnce sync.Once
	closeCampaign := func() { closeCampaignOnce.Do(func() { close(campaignDone) }) }

	caseConfig := CaseConfig{AvailableGas: tc.AvailableGas, ForkConfig: resolveForkConfig(tc.ForkConfig)}

	// Step 4: spawn `runs` tasks, each with an independent argument tuple and its own run index.
	results := make(chan runResult, runs)
	var group errgroup.Group
	for i := uint32(0); i < runs; i++ {
		args := fuzzer.NextArgs()
		index, args := i, args
		group.Go(func() error {
			select {
			case <-outerDone:
				results <- runResult{index: index, skipped: true}
				return nil
			case <-campaignDone:
				results <- runResult{index: index, skipped: true}
				return nil
			default:
			}

			outcome := adapter.Run(program, details, args, caseConfig, params, tc.ExpectedResult)
			if !outcome.Passed {
				closeCampaign()
			}
			results <- runResult{index: index, outcome: outcome}
			return nil
		})
	}

	go func() {
		_ = group.Wait()
		close(results)
	}()

	// Step 5/6: drain completions, collecting every run's result.
	collected := make([]runResult, 0, runs)
	for r := range results {
		collected = append(collected, r)
	}

	return aggregateCampaignResults(tc.Name, runs, collected)
}

// aggregateCampaignResults implements steps 5-6 of the Fuzz Campaign Driver contract. The "final outcome = last
// observed" rule is resolved deterministically by sorting collected results by run index first, rather than by
// arrival order, so that campaign aggregation is reproducible given a fixed seed independent of scheduling. A
// failed run always dominates: a run that raced past the campaign-channel close and passed with a higher index can
// never mask an earlier failure as a passed campaign.
func aggregateCampaignResults(name string, fuzzerRuns uint32, collected []runResult) CaseOutcome {
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	var decisive uint32
	var gasUsages []float64
	var lastFailed *runResult
	anyDecisive := false

	for i := range collected {
		r := collected[i]
		if r.skipped {
			continue
		}
		decisive++
		anyDecisive = true
		if r.outcome.Passed {
			gasUsages = append(gasUsages, float64(r.outcome.GasUsed))
		} else {
			lastFailed = &collected[i]
		}
	}

	runs := decisive

	if !anyDecisive {
		// Every run observed cancellation before producing a terminal outcome.
		return CaseOutcome{Kind: Skipped, Name: name}
	}

	if lastFailed != nil {
		return CaseOutcome{Kind: Failed, Name: name, Reason: lastFailed.outcome.Reason, Runs: &runs}
	}

	// Every decisive run passed, but if not every run got to produce a decision, the property was not fully
	// verified: reclassify as Skipped.
	if runs < fuzzerRuns {
		return CaseOutcome{Kind: Skipped, Name: name}
	}

	usage := minMaxGasUsage(gasUsages)
	return CaseOutcome{Kind: Passed, Name: name, Runs: &runs, GasUsages: usage}
}

// minMaxGasUsage computes {min, max} over a set of passed-run gas readings. It is defined only when there is at
// least one reading (a fully-passed campaign always has fuzzerRuns >= 1 readings).
func minMaxGasUsage(values []float64) *FuzzingGasUsage {
	if len(values) == 0 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &FuzzingGasUsage{Min: min, Max: max}
}

// resolveForkConfig resolves a raw ForkConfig into the concrete ValidatedForkConfig handed to the executor. No
// RPC resolution happens here: only the validated data-shape handoff is in scope.
func resolveForkConfig(raw *ForkConfig) *ValidatedForkConfig {
	if raw == nil {
		return nil
	}
	return &ValidatedForkConfig{URL: raw.URL, BlockTag: raw.BlockIdentifier}
}
