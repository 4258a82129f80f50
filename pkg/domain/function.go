package domain

// Function is author-supplied logic attached to an element. It is a sum
// over two shapes: a script snippet (Code) or a structured no-code
// condition set (NoCode). Exactly one of the two is set on a
// well-formed definition; the parser rejects anything else.
type Function struct {
	// Code is a short script snippet evaluated in the sandbox.
	Code string `json:"code,omitempty"`

	// NoCode is a structured condition set evaluated without scripting.
	NoCode *ConditionSet `json:"no_code,omitempty"`
}

// IsCode reports whether the function is a script snippet.
func (f *Function) IsCode() bool { return f != nil && f.Code != "" }

// IsNoCode reports whether the function is a condition set.
func (f *Function) IsNoCode() bool { return f != nil && f.NoCode != nil }

// ResultKind classifies the tri-state outcome of a function evaluation.
type ResultKind int

const (
	// NoResult means the function yielded nothing; callers apply their
	// per-context default (visible, valid, no computed value).
	NoResult ResultKind = iota
	// BoolResult carries a boolean verdict.
	BoolResult
	// ValueResult carries an arbitrary JSON-shaped value (compute and
	// patch functions).
	ValueResult
)

// FunctionResult is the tri-state outcome of evaluating a Function.
type FunctionResult struct {
	Kind  ResultKind
	Bool  bool
	Value any
}

// NoFunctionResult is the zero outcome.
var NoFunctionResult = FunctionResult{Kind: NoResult}

// BoolFunctionResult wraps a boolean verdict.
func BoolFunctionResult(v bool) FunctionResult {
	return FunctionResult{Kind: BoolResult, Bool: v}
}

// ValueFunctionResult wraps an arbitrary value. A nil value collapses
// to NoResult so that scripts returning null behave like scripts
// returning nothing.
func ValueFunctionResult(v any) FunctionResult {
	if v == nil {
		return NoFunctionResult
	}
	return FunctionResult{Kind: ValueResult, Value: v}
}
