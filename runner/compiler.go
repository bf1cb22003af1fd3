package runner

import "github.com/pkg/errors"

// IRProgram is the out-of-scope Sierra IR input handed to CompileFrontEnd: one compiled test crate's intermediate
// representation, plus the raw per-function metadata an IRCompiler needs to resolve entry points and parameter
// layouts. Its internal shape is opaque here; only the two accessors below are consumed.
type IRProgram struct {
	// Sierra is the opaque intermediate representation blob for the whole crate.
	Sierra any
	// CaseNames lists every test function name present in Sierra, in declaration order.
	CaseNames []string
}

// IRCompiler is the external, opaque collaborator that lowers one IRProgram into an assembled CompiledProgram plus
// per-case TestDetails. A real implementation wraps a Sierra-to-CASM backend; this package only defines the seam.
type IRCompiler interface {
	// Compile lowers ir into an assembled program. Returns an error if any referenced case cannot be resolved to a
	// concrete entry point.
	Compile(ir IRProgram) (*CompiledProgram, map[string]*TestDetails, error)
}

// CompileFrontEnd runs the one-shot compile step for a crate: it delegates to compiler and validates that every
// name in ir.CaseNames resolved to a TestDetails entry, mirroring run_config_pass's requirement that a test's
// parameter_types and entry_point_offset be resolved before any run is attempted.
//
// A failure here is always a FatalSetupError: the crate never reaches the Scheduler, and no case for it is ever
// reported as Failed or Skipped.
func CompileFrontEnd(ir IRProgram, compiler IRCompiler) (*CompiledProgram, map[string]*TestDetails, error) {
	program, details, err := compiler.Compile(ir)
	if err != nil {
		return nil, nil, newFatalSetupError(errors.Wrap(err, "front-end compilation failed"))
	}

	for _, name := range ir.CaseNames {
		if _, ok := details[name]; !ok {
			return nil, nil, newFatalSetupError(errors.Errorf("no test details resolved for case %q", name))
		}
	}

	return program, details, nil
}
