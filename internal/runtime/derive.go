package runtime

import (
	"context"
	"fmt"

	"github.com/formweave/formweave/internal/script"
	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
)

// prepare applies an element's derivation steps in the mandated order:
// patch first (so the visibility function already sees the rewritten
// attributes), then visibility, then value computation for visible
// inputs. It returns the effective element (patched snapshot or the
// original) and its resolved visibility.
//
// Error policy, applied consistently across the engine:
//   - a broken patch or compute script propagates as an internal error
//     (these drive data integrity);
//   - a broken visibility script hides the element (an element whose
//     visibility cannot be decided is safer treated as hidden);
//   - malformed no-code usage (unknown operator, arity) always
//     propagates, in every position.
func (r *run) prepare(ctx context.Context, el *domain.Element, prefix string) (*domain.Element, bool, error) {
	resolvedID := domain.Resolve(el.ID, prefix)

	if el.Patch != nil {
		result, err := r.evalFunction(ctx, el.Patch, el, prefix)
		if err != nil {
			return nil, false, &domain.ScriptError{ElementID: resolvedID, Snippet: el.Patch.Code, Err: err}
		}
		if result.Kind == domain.ValueResult {
			attrs, ok := result.Value.(map[string]any)
			if !ok {
				return nil, false, fmt.Errorf("patch function of %q must yield an object, got %T", resolvedID, result.Value)
			}
			r.dctx.SetOverride(resolvedID, patchedElement(el, attrs))
		}
	}

	effective := el
	if override := r.dctx.GetOverride(resolvedID); override != nil {
		effective = override
	}

	visible := true
	if effective.Visibility != nil {
		result, err := r.evalFunction(ctx, effective.Visibility, effective, prefix)
		switch {
		case err != nil && effective.Visibility.IsCode():
			// Broken visibility script: degrade to hidden.
			r.logger.Warn("visibility script failed, hiding element", "element_id", resolvedID, "err", err)
			visible = false
		case err != nil:
			return nil, false, err
		case result.Kind == domain.BoolResult:
			visible = result.Bool
		case result.Kind == domain.ValueResult:
			visible = nocode.ToBoolean(result.Value)
		}
	}
	r.dctx.SetVisibility(resolvedID, visible)

	if visible && effective.IsInput() && effective.ComputeValue != nil {
		result, err := r.evalFunction(ctx, effective.ComputeValue, effective, prefix)
		if err != nil {
			return nil, false, &domain.ScriptError{ElementID: resolvedID, Snippet: effective.ComputeValue.Code, Err: err}
		}
		switch result.Kind {
		case domain.ValueResult:
			r.dctx.SetComputed(resolvedID, result.Value)
		case domain.BoolResult:
			r.dctx.SetComputed(resolvedID, result.Bool)
		}
	}

	return effective, visible, nil
}

// evalFunction evaluates the Function sum against the current context.
// Script errors are returned raw; the caller applies the per-position
// policy documented on prepare.
func (r *run) evalFunction(ctx context.Context, fn *domain.Function, el *domain.Element, prefix string) (domain.FunctionResult, error) {
	if fn.IsCode() {
		out, err := r.engine.sandbox.Evaluate(ctx, fn.Code, r.hostObjects(el, prefix))
		if err != nil {
			return domain.NoFunctionResult, err
		}
		if b, ok := out.(bool); ok {
			return domain.BoolFunctionResult(b), nil
		}
		return domain.ValueFunctionResult(out), nil
	}
	if fn.IsNoCode() {
		met, _, err := r.evaluateConditionSet(ctx, fn.NoCode, prefix)
		if err != nil {
			return domain.NoFunctionResult, err
		}
		return domain.BoolFunctionResult(met), nil
	}
	return domain.NoFunctionResult, nil
}

// hostObjects assembles the sandbox environment for one evaluation:
// the four conventional maps, plus the evaluating element's own
// serialized attributes.
func (r *run) hostObjects(el *domain.Element, prefix string) script.HostObjects {
	elementAttrs, _ := script.Convert(el).(map[string]any)
	if elementAttrs == nil {
		elementAttrs = map[string]any{}
	}
	elementAttrs["resolved_id"] = domain.Resolve(el.ID, prefix)

	overrides := map[string]any{}
	for id, override := range r.dctx.overrides {
		overrides[id] = script.Convert(override)
	}

	return script.HostObjects{
		InputValues:    r.dctx.input,
		ComputedValues: r.dctx.computed,
		Visibilities:   r.dctx.Visibilities(),
		Errors:         r.dctx.Errors(),
		Overrides:      overrides,
		Element:        elementAttrs,
		Values:         r.dctx.CombinedValues(),
	}
}

// patchedElement builds the overridden snapshot of an element from a
// patch function's output object. Unknown keys are ignored; patching
// cannot change identity or variant.
func patchedElement(el *domain.Element, attrs map[string]any) *domain.Element {
	patched := el.Clone()
	for key, raw := range attrs {
		switch key {
		case "label":
			patched.Label = nocode.ToString(raw)
		case "required":
			patched.Required = nocode.ToBoolean(raw)
		case "disabled":
			patched.Disabled = nocode.ToBoolean(raw)
		case "technical":
			patched.Technical = nocode.ToBoolean(raw)
		case "destination_key":
			patched.DestinationKey = nocode.ToString(raw)
		case "options":
			if list, ok := raw.([]any); ok {
				options := make([]string, 0, len(list))
				for _, v := range list {
					options = append(options, nocode.ToString(v))
				}
				patched.Options = options
			}
		case "minimum_required_sets":
			patched.MinimumRequiredSets = int(nocode.ToNumber(raw))
		case "maximum_sets":
			patched.MaximumSets = int(nocode.ToNumber(raw))
		case "headline_template":
			patched.HeadlineTemplate = nocode.ToString(raw)
		case "no_data_text":
			patched.NoDataText = nocode.ToString(raw)
		}
	}
	return patched
}
