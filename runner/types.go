package runner

import "github.com/google/uuid"

// ExpectedResultKind discriminates the two shapes an ExpectedResult can take.
type ExpectedResultKind int

const (
	// ExpectSuccess means a case is only considered Passed if the executor reports success.
	ExpectSuccess ExpectedResultKind = iota
	// ExpectPanicWith means a case is only considered Passed if the executor panics with one of Messages.
	ExpectPanicWith
)

// ExpectedResult is the classification hint carried by a TestCase, mirroring the source's
// `expected_result: variant {Success, PanicWith(messages)}`.
type ExpectedResult struct {
	Kind     ExpectedResultKind
	Messages []string // only meaningful when Kind == ExpectPanicWith
}

// ForkConfig is the raw, unresolved fork target attached to a TestCase.
type ForkConfig struct {
	URL             string
	BlockIdentifier string
}

// ValidatedForkConfig is the form of ForkConfig handed to a CaseExecutor, produced by the Dispatcher before a run.
// The Dispatcher copies ForkConfig.BlockIdentifier unparsed into BlockTag; it does not populate BlockNumber or
// BlockHash and does not check the identifier.
type ValidatedForkConfig struct {
	URL         string
	BlockNumber *uint64
	BlockHash   string
	BlockTag    string
}

// FuzzerConfig overrides RunnerConfig's default (runs, seed) pair for a single case.
type FuzzerConfig struct {
	Runs uint32
	Seed uint64
}

// TestCase is immutable once constructed.
type TestCase struct {
	Name           string
	AvailableGas   *uint64 // nil means no gas budget is enforced
	Ignored        bool
	ExpectedResult ExpectedResult
	ForkConfig     *ForkConfig
	FuzzerConfig   *FuzzerConfig
}

// CompiledProgram is the opaque, immutable, shared assembled form of one compiled test crate. It is created once
// per crate by CompileFrontEnd and is shared read-only by every task spawned for that crate.
type CompiledProgram struct {
	// Code is the opaque assembled program (CASM bytecode and symbol table) produced by the IRCompiler. Its
	// internal shape is not interpreted here; the core only ever passes it through to CaseExecutor.
	Code any
}

// TestDetails is the immutable, per-case metadata extracted from CompiledProgram during compilation.
type TestDetails struct {
	EntryPointOffset int
	ParameterTypes   []ParamType
	ReturnTypes      []ParamType
}

// ParamType is a (generic_type_id, size_in_slots) pair, as extracted from the compiled program's type registry.
type ParamType struct {
	GenericTypeID string
	SizeInSlots   int
}

// OutcomeKind discriminates the variants of CaseOutcome. Go has no tagged union, so CaseOutcome carries the
// discriminant plus every field relevant to any variant; only the fields documented against the matching
// OutcomeKind are populated.
type OutcomeKind int

const (
	// Passed means the case (or fuzz campaign) completed and was classified as a pass.
	Passed OutcomeKind = iota
	// Failed means the case (or fuzz campaign) completed and was classified as a failure.
	Failed
	// Ignored means the case was never executed because TestCase.Ignored was true.
	Ignored
	// Skipped means cancellation preempted the case (or an individual fuzz run) before a terminal outcome.
	Skipped
	// interrupted is the internal-only campaign signal; it is never returned in a CrateSummary.
	interrupted
)

// String renders an OutcomeKind the way the default Printer renders it in outcome lines.
func (k OutcomeKind) String() string {
	switch k {
	case Passed:
		return "PASSED"
	case Failed:
		return "FAILED"
	case Ignored:
		return "IGNORED"
	case Skipped:
		return "SKIPPED"
	default:
		return "INTERRUPTED"
	}
}

// CaseOutcome is the terminal classification of one scheduled case.
type CaseOutcome struct {
	Kind OutcomeKind
	Name string

	// ID is a correlation id assigned when the outcome leaves the dispatcher, tying a case's printed emission to
	// its summary entry.
	ID uuid.UUID

	// GasUsed is set only for a deterministic Passed outcome.
	GasUsed uint64
	// Reason is set only for a Failed outcome.
	Reason string
	// Runs is non-nil only for a fuzzed case; for a Passed fuzzed case Runs == FuzzerConfig.Runs.
	Runs *uint32
	// GasUsages is set only when Runs != nil, Kind == Passed, and the campaign fully completed.
	GasUsages *FuzzingGasUsage
}

// FuzzingGasUsage summarizes gas consumption across every Passed run of a fuzzed case.
type FuzzingGasUsage struct {
	Min float64
	Max float64
}
