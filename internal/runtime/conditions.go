package runtime

import (
	"context"
	"fmt"

	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
)

// evaluateConditionSet walks a condition tree. All-mode fails fast on
// the first unmet member; Any-mode succeeds fast on the first met one.
// The returned message is only meaningful when met is false.
//
// Author errors (unknown operator, wrong arity) propagate as errors;
// dangling references do not — they degrade to an unmet condition with
// an explicit message, because a broken reference must never crash a
// citizen's session.
func (r *run) evaluateConditionSet(ctx context.Context, set *domain.ConditionSet, prefix string) (met bool, message string, err error) {
	r.engine.metrics.ConditionEvaluation()

	switch set.Mode {
	case domain.ModeAny:
		for _, cond := range set.Conditions {
			condMet, _, err := r.evaluateCondition(ctx, cond, prefix)
			if err != nil {
				return false, "", err
			}
			if condMet {
				return true, "", nil
			}
		}
		for _, nested := range set.Sets {
			nestedMet, _, err := r.evaluateConditionSet(ctx, nested, prefix)
			if err != nil {
				return false, "", err
			}
			if nestedMet {
				return true, "", nil
			}
		}
		return false, set.Message(), nil

	default: // ModeAll, also the zero value
		for _, cond := range set.Conditions {
			condMet, condMessage, err := r.evaluateCondition(ctx, cond, prefix)
			if err != nil {
				return false, "", err
			}
			if !condMet {
				if condMessage == "" {
					condMessage = set.Message()
				}
				return false, condMessage, nil
			}
		}
		for _, nested := range set.Sets {
			nestedMet, nestedMessage, err := r.evaluateConditionSet(ctx, nested, prefix)
			if err != nil {
				return false, "", err
			}
			if !nestedMet {
				return false, nestedMessage, nil
			}
		}
		return true, "", nil
	}
}

// evaluateCondition resolves both operands and dispatches to the
// evaluator owned by the referenced element's variant.
func (r *run) evaluateCondition(ctx context.Context, cond *domain.Condition, prefix string) (met bool, message string, err error) {
	refEl := domain.FindDescendant(r.root, cond.Reference)
	if refEl == nil {
		return false, fmt.Sprintf("reference %q not found", cond.Reference), nil
	}

	left := r.gatedValue(cond.Reference, prefix)

	var right any
	if cond.Target != "" {
		if domain.FindDescendant(r.root, cond.Target) == nil {
			return false, fmt.Sprintf("target %q not found", cond.Target), nil
		}
		right = r.gatedValue(cond.Target, prefix)
	} else {
		right = cond.Value
	}

	met, err = evaluateForType(refEl.Type, cond.Operator, left, right)
	if err != nil {
		return false, "", err
	}
	return met, "", nil
}

// gatedValue dereferences an element's value with visibility gating:
// an invisible element's value is absent (nil), never its stored
// value. Gating happens before every dereference.
func (r *run) gatedValue(id, prefix string) any {
	resolvedID := domain.Resolve(id, prefix)
	if r.dctx.IsInvisible(resolvedID) {
		return nil
	}
	return r.dctx.GetValue(resolvedID)
}

// typeNormalizers adapt the left operand to the value shape the
// element variant compares with: a replicating container compares its
// instance list, a checkbox its boolean state, scalar inputs their raw
// value (operators apply the cast rules themselves).
var typeNormalizers = map[domain.ElementType]func(any) any{
	domain.TypeReplicatingContainer: func(v any) any {
		if v == nil {
			return []any{}
		}
		return v
	},
	domain.TypeCheckboxInput: func(v any) any {
		return nocode.ToBoolean(v)
	},
}

// evaluateForType runs the operator comparison owned by the element
// variant. Unknown operators and arity mismatches surface as errors:
// they mean the form definition is malformed and must fail during
// authoring, not silently misbehave in front of a citizen.
func evaluateForType(elType domain.ElementType, operator string, left, right any) (bool, error) {
	op, ok := nocode.Lookup(operator)
	if !ok {
		return false, &domain.UnknownOperatorError{Operator: operator}
	}

	if normalize, ok := typeNormalizers[elType]; ok {
		left = normalize(left)
	}

	var (
		out any
		err error
	)
	switch op.Arity() {
	case 1:
		out, err = op.Evaluate([]any{left})
	case 2:
		out, err = op.Evaluate([]any{left, right})
	default:
		return false, &domain.WrongArgumentCountError{Operator: operator, Want: op.Arity(), Got: 2}
	}
	if err != nil {
		return false, err
	}
	return nocode.ToBoolean(out), nil
}
