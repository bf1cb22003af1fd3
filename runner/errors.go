package runner

import "github.com/pkg/errors"

// FatalSetupError wraps a failure during compilation or type-map extraction. It is returned by CompileFrontEnd, so a
// crate whose compilation fails never reaches the Scheduler.
type FatalSetupError struct {
	cause error
}

func newFatalSetupError(cause error) *FatalSetupError {
	return &FatalSetupError{cause: errors.WithStack(cause)}
}

func (e *FatalSetupError) Error() string {
	return errors.Wrap(e.cause, "fatal setup error").Error()
}

func (e *FatalSetupError) Unwrap() error {
	return e.cause
}

// CaseConfigurationError indicates a case-level misconfiguration (e.g. the Fuzzer was asked to sample an
// unsupported parameter type). It is never a fatal error; it is surfaced as a case-level Failed{reason} outcome.
type CaseConfigurationError struct {
	cause error
}

func newCaseConfigurationError(cause error) *CaseConfigurationError {
	return &CaseConfigurationError{cause: errors.WithStack(cause)}
}

func (e *CaseConfigurationError) Error() string {
	return e.cause.Error()
}

func (e *CaseConfigurationError) Unwrap() error {
	return e.cause
}

// ExecutorError wraps any lower-level VM or I/O error surfaced by a CaseExecutor during a single run. It is
// classified as Failed{reason} for that run, never propagated as a fatal error.
type ExecutorError struct {
	cause error
}

func newExecutorError(cause error) *ExecutorError {
	return &ExecutorError{cause: errors.WithStack(cause)}
}

func (e *ExecutorError) Error() string {
	return e.cause.Error()
}

func (e *ExecutorError) Unwrap() error {
	return e.cause
}
