package service

import "fmt"

// DataIncompleteError marks a check whose required fields are absent from the
// dataset, or whose denominator is zero or negative. It is non-fatal: the
// evaluator converts it to a SKIPPED result and the pipeline continues.
type DataIncompleteError struct {
	Field  string
	Reason string
}

func (e *DataIncompleteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("data incomplete: %s (%s)", e.Field, e.Reason)
	}
	return fmt.Sprintf("data incomplete: %s", e.Field)
}

// ClassifierTimeoutError marks a textual check whose classifier call exceeded
// its deadline. Non-fatal, scoped to the affected check, never retried inline.
type ClassifierTimeoutError struct {
	CheckID string
}

func (e *ClassifierTimeoutError) Error() string {
	return fmt.Sprintf("classifier timed out for check %s", e.CheckID)
}

// ClassifierUnavailableError marks a textual check whose classifier call
// failed for any reason other than a timeout. Same SKIPPED handling.
type ClassifierUnavailableError struct {
	CheckID string
	Cause   error
}

func (e *ClassifierUnavailableError) Error() string {
	return fmt.Sprintf("classifier unavailable for check %s: %v", e.CheckID, e.Cause)
}

func (e *ClassifierUnavailableError) Unwrap() error {
	return e.Cause
}

// ConfigurationError marks a malformed check catalog or scoring table. It is
// fatal at load time: a silent pass would corrupt every subsequent score.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("scoring configuration invalid: %s", e.Detail)
}

// InvariantViolationError marks a state that should never occur, such as a
// check result whose severity diverges from its catalog definition. It aborts
// the whole computation; no partial assessment is ever persisted.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Detail)
}
