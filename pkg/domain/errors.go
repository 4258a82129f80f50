package domain

import (
	"errors"
	"fmt"
)

// ErrReferenceNotFound marks a dangling condition reference or target.
// It is non-fatal: condition evaluation degrades to "unmet" and reports
// a message instead of aborting the traversal.
var ErrReferenceNotFound = errors.New("referenced element not found")

// ScriptError wraps a syntax or runtime failure of a single snippet
// evaluation. The failure is scoped to that evaluation; the policy for
// what happens next depends on which function failed (visibility
// degrades to hidden, validate degrades to invalid, patch and compute
// propagate).
type ScriptError struct {
	ElementID string
	Snippet   string
	Err       error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script evaluation failed for element %q: %v", e.ElementID, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// WrongArgumentCountError reports an arity violation of a no-code
// operator. It indicates a malformed form definition and is always
// surfaced, never silently ignored.
type WrongArgumentCountError struct {
	Operator string
	Want     int
	Got      int
}

func (e *WrongArgumentCountError) Error() string {
	return fmt.Sprintf("operator %q expects %d arguments, got %d", e.Operator, e.Want, e.Got)
}

// UnsupportedCastError reports a cast the no-code type system cannot
// express. Like arity violations it signals an authoring error and is
// always surfaced.
type UnsupportedCastError struct {
	From string
	To   string
}

func (e *UnsupportedCastError) Error() string {
	return fmt.Sprintf("cannot cast %s to %s", e.From, e.To)
}

// UnknownOperatorError reports a condition naming an operator that is
// not registered.
type UnknownOperatorError struct {
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Operator)
}

// ValidationFailure is the user-facing outcome of a failed validation
// walk. It carries the offending element's resolved id so the intake
// controller can point the citizen at the field.
type ValidationFailure struct {
	ElementID string `json:"element_id"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message"`
}

func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("element %q: %s", f.ElementID, f.Message)
}
