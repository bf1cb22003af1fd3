package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/software-mansion/casm-test-runner/runner"
)

// CompiledTestCrate is the on-disk artifact describing one compiled test crate: the assembled program plus the
// per-case metadata a sibling build tool extracted from it. The runner core never produces this file; it only
// consumes it.
type CompiledTestCrate struct {
	// ProgramPath is the path of the assembled CASM program. A relative path from the artifact is joined onto the
	// artifact file's directory, so it is absolute only when that directory path is.
	ProgramPath string

	// CorelibVersion is the corelib version the crate was compiled against, as reported by the build tool.
	CorelibVersion string

	TestCases   []*runner.TestCase
	TestDetails map[string]*runner.TestDetails
}

// Program wraps the artifact's program path in the shared, immutable handle every executor task receives.
func (c *CompiledTestCrate) Program() *runner.CompiledProgram {
	return &runner.CompiledProgram{Code: c.ProgramPath}
}

// The types below describe the artifact's JSON encoding. They are decoded first and then converted into the
// runner's types, so the wire format can evolve without leaking encoding tags into the core's data model.

type compiledTestCrateJSON struct {
	ProgramPath    string                     `json:"program_path"`
	CorelibVersion string                     `json:"corelib_version"`
	TestCases      []testCaseJSON             `json:"test_cases"`
	TestDetails    map[string]testDetailsJSON `json:"test_details"`
}

type testCaseJSON struct {
	Name           string              `json:"name"`
	AvailableGas   *uint64             `json:"available_gas"`
	Ignored        bool                `json:"ignored"`
	ExpectedResult *expectedResultJSON `json:"expected_result"`
	ForkConfig     *forkConfigJSON     `json:"fork_config"`
	FuzzerConfig   *fuzzerConfigJSON   `json:"fuzzer_config"`
}

type expectedResultJSON struct {
	Kind     string   `json:"kind"`
	Messages []string `json:"messages"`
}

type forkConfigJSON struct {
	URL             string `json:"url"`
	BlockIdentifier string `json:"block_identifier"`
}

type fuzzerConfigJSON struct {
	Runs uint32 `json:"runs"`
	Seed uint64 `json:"seed"`
}

type testDetailsJSON struct {
	EntryPointOffset int             `json:"entry_point_offset"`
	ParameterTypes   []paramTypeJSON `json:"parameter_types"`
	ReturnTypes      []paramTypeJSON `json:"return_types"`
}

type paramTypeJSON struct {
	GenericTypeID string `json:"generic_type_id"`
	SizeInSlots   int    `json:"size_in_slots"`
}

// ReadCompiledTestCrateFromFile reads and validates a compiled test crate artifact. The program path is resolved
// relative to the artifact file's directory when it is not absolute.
func ReadCompiledTestCrateFromFile(path string) (*CompiledTestCrate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read compiled test crate artifact")
	}

	var encoded compiledTestCrateJSON
	if err := json.Unmarshal(b, &encoded); err != nil {
		return nil, errors.Wrap(err, "failed to parse compiled test crate artifact")
	}

	crate, err := decodeCompiledTestCrate(&encoded)
	if err != nil {
		return nil, err
	}
	if crate.ProgramPath == "" {
		return nil, errors.New("compiled test crate artifact does not name a program path")
	}
	if !filepath.IsAbs(crate.ProgramPath) {
		crate.ProgramPath = filepath.Join(filepath.Dir(path), crate.ProgramPath)
	}
	return crate, nil
}

// decodeCompiledTestCrate converts the artifact's wire shape into the runner's data model, validating case-name
// uniqueness and that every case resolved its TestDetails entry.
func decodeCompiledTestCrate(encoded *compiledTestCrateJSON) (*CompiledTestCrate, error) {
	crate := &CompiledTestCrate{
		ProgramPath:    encoded.ProgramPath,
		CorelibVersion: encoded.CorelibVersion,
		TestCases:      make([]*runner.TestCase, 0, len(encoded.TestCases)),
		TestDetails:    make(map[string]*runner.TestDetails, len(encoded.TestDetails)),
	}

	seen := make(map[string]struct{}, len(encoded.TestCases))
	for i := range encoded.TestCases {
		tc, err := decodeTestCase(&encoded.TestCases[i])
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tc.Name]; dup {
			return nil, errors.Errorf("compiled test crate artifact names case %q more than once", tc.Name)
		}
		seen[tc.Name] = struct{}{}
		crate.TestCases = append(crate.TestCases, tc)
	}

	for name, details := range encoded.TestDetails {
		crate.TestDetails[name] = &runner.TestDetails{
			EntryPointOffset: details.EntryPointOffset,
			ParameterTypes:   decodeParamTypes(details.ParameterTypes),
			ReturnTypes:      decodeParamTypes(details.ReturnTypes),
		}
	}

	for _, tc := range crate.TestCases {
		if _, ok := crate.TestDetails[tc.Name]; !ok {
			return nil, errors.Errorf("no test details present for case %q", tc.Name)
		}
	}
	return crate, nil
}

func decodeTestCase(encoded *testCaseJSON) (*runner.TestCase, error) {
	if encoded.Name == "" {
		return nil, errors.New("compiled test crate artifact contains an unnamed case")
	}

	expected, err := decodeExpectedResult(encoded.ExpectedResult)
	if err != nil {
		return nil, errors.Wrapf(err, "case %q", encoded.Name)
	}

	tc := &runner.TestCase{
		Name:           encoded.Name,
		AvailableGas:   encoded.AvailableGas,
		Ignored:        encoded.Ignored,
		ExpectedResult: expected,
	}
	if encoded.ForkConfig != nil {
		tc.ForkConfig = &runner.ForkConfig{URL: encoded.ForkConfig.URL, BlockIdentifier: encoded.ForkConfig.BlockIdentifier}
	}
	if encoded.FuzzerConfig != nil {
		tc.FuzzerConfig = &runner.FuzzerConfig{Runs: encoded.FuzzerConfig.Runs, Seed: encoded.FuzzerConfig.Seed}
	}
	return tc, nil
}

func decodeExpectedResult(encoded *expectedResultJSON) (runner.ExpectedResult, error) {
	// An absent expectation means a plain success expectation.
	if encoded == nil {
		return runner.ExpectedResult{Kind: runner.ExpectSuccess}, nil
	}

	switch encoded.Kind {
	case "", "success":
		return runner.ExpectedResult{Kind: runner.ExpectSuccess}, nil
	case "panic_with":
		return runner.ExpectedResult{Kind: runner.ExpectPanicWith, Messages: encoded.Messages}, nil
	default:
		return runner.ExpectedResult{}, errors.Errorf("unknown expected result kind %q", encoded.Kind)
	}
}

func decodeParamTypes(encoded []paramTypeJSON) []runner.ParamType {
	if len(encoded) == 0 {
		return nil
	}
	result := make([]runner.ParamType, len(encoded))
	for i, p := range encoded {
		result[i] = runner.ParamType{GenericTypeID: p.GenericTypeID, SizeInSlots: p.SizeInSlots}
	}
	return result
}
