package nocode

import (
	"sort"
	"sync"

	"github.com/formweave/formweave/pkg/domain"
)

// ParamType is the declared type of an operator parameter or return
// value. The no-code type system is dynamic: values are cast to the
// declared type at evaluation time using the rules in casts.go.
type ParamType string

const (
	ParamBoolean ParamType = "boolean"
	ParamNumber  ParamType = "number"
	ParamText    ParamType = "text"
	ParamList    ParamType = "list"
	ParamAny     ParamType = "any"
)

// Param describes one typed operator parameter.
type Param struct {
	Name string    `json:"name"`
	Type ParamType `json:"type"`
}

// Operator is a pure, side-effect-free computation with declared
// parameter and return types. The metadata fields feed the authoring
// UI catalog.
type Operator struct {
	ID          string    `json:"id"`
	Package     string    `json:"package"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Params      []Param   `json:"params"`
	Returns     ParamType `json:"returns"`

	eval func(args []any) (any, error)
}

// Evaluate validates arity and runs the operator. An arity violation
// is a *domain.WrongArgumentCountError; it indicates a malformed form
// definition and must never be swallowed.
func (o *Operator) Evaluate(args []any) (any, error) {
	if len(args) != len(o.Params) {
		return nil, &domain.WrongArgumentCountError{
			Operator: o.ID,
			Want:     len(o.Params),
			Got:      len(args),
		}
	}
	return o.eval(args)
}

// Arity returns the declared parameter count.
func (o *Operator) Arity() int { return len(o.Params) }

// NewOperator builds an operator for registration. The evaluation
// function must be pure and side-effect-free; it is called with
// exactly len(params) arguments.
func NewOperator(id, pkg, label, description string, params []Param, returns ParamType, eval func(args []any) (any, error)) *Operator {
	return &Operator{
		ID:          id,
		Package:     pkg,
		Label:       label,
		Description: description,
		Params:      params,
		Returns:     returns,
		eval:        eval,
	}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Operator{}
)

// Register adds an operator to the global registry. Registering a
// duplicate id panics: operator ids are part of the stored-form
// contract and a silent overwrite would corrupt evaluation.
func Register(op *Operator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[op.ID]; exists {
		panic("nocode: duplicate operator id " + op.ID)
	}
	registry[op.ID] = op
}

// Lookup returns the operator registered under id.
func Lookup(id string) (*Operator, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, ok := registry[id]
	return op, ok
}

// Catalog returns all registered operators sorted by package then id.
// The slice is a copy; callers may not mutate registry state through
// it. Authoring UIs serialize this directly.
func Catalog() []*Operator {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Operator, 0, len(registry))
	for _, op := range registry {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Package != out[j].Package {
			return out[i].Package < out[j].Package
		}
		return out[i].ID < out[j].ID
	})
	return out
}
