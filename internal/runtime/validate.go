package runtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
)

// dateLayouts are the accepted textual date forms.
var dateLayouts = []string{"2006-01-02", "02.01.2006"}

// validateElement is the per-element validation state machine:
// patch → invisible-skip → required-empty → type check → custom
// validate function. The first failure anywhere in the depth-first,
// left-to-right walk aborts the whole validation.
//
// The custom validate Function has INVERTED truth: it encodes the
// invalid condition, so a met condition set or a truthy script result
// is a failure. This polarity is relied upon by existing form
// definitions and must not be "fixed".
func (r *run) validateElement(ctx context.Context, el *domain.Element, prefix string) (*domain.ValidationFailure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	effective, visible, err := r.prepare(ctx, el, prefix)
	if err != nil {
		return nil, err
	}
	if !visible {
		// Hidden elements and their subtrees are exempt, including
		// from "required".
		return nil, nil
	}
	if effective.Technical {
		return nil, nil
	}

	resolvedID := domain.Resolve(effective.ID, prefix)

	if effective.Type == domain.TypeReplicatingContainer {
		return r.validateReplication(ctx, effective, prefix, resolvedID)
	}

	if effective.IsContainer() {
		for _, child := range effective.Children {
			failure, err := r.validateElement(ctx, child, prefix)
			if failure != nil || err != nil {
				return failure, err
			}
		}
		return nil, nil
	}

	value := r.dctx.GetValue(resolvedID)

	if effective.Required && isEmptyValue(value) {
		return r.fail(effective, resolvedID, fmt.Sprintf("%s is required", effective.DisplayLabel())), nil
	}

	if message := validateValueForType(effective, value); message != "" {
		return r.fail(effective, resolvedID, message), nil
	}

	if effective.Validate != nil {
		result, err := r.evalFunction(ctx, effective.Validate, effective, prefix)
		if err != nil {
			if effective.Validate.IsCode() {
				// Broken validate script: degrade to invalid. Letting a
				// value through because its check crashed would be the
				// unsafe direction.
				r.logger.Warn("validate script failed, treating value as invalid",
					"element_id", resolvedID, "err", err)
				return r.fail(effective, resolvedID, fmt.Sprintf("%s could not be validated", effective.DisplayLabel())), nil
			}
			return nil, err
		}
		if message, invalid := invertedVerdict(effective.Validate, result); invalid {
			if message == "" {
				message = fmt.Sprintf("%s is invalid", effective.DisplayLabel())
			}
			return r.fail(effective, resolvedID, message), nil
		}
	}

	return nil, nil
}

// invertedVerdict interprets a validate-function result: truthy means
// INVALID. A script returning a non-empty string is both truthy and
// the failure message.
func invertedVerdict(fn *domain.Function, result domain.FunctionResult) (message string, invalid bool) {
	switch result.Kind {
	case domain.BoolResult:
		if result.Bool {
			if fn.IsNoCode() {
				return fn.NoCode.Message(), true
			}
			return "", true
		}
	case domain.ValueResult:
		if nocode.ToBoolean(result.Value) {
			if s, ok := result.Value.(string); ok {
				return s, true
			}
			return "", true
		}
	}
	return "", false
}

func (r *run) validateReplication(ctx context.Context, el *domain.Element, prefix, resolvedID string) (*domain.ValidationFailure, error) {
	instances := r.dctx.InstanceIDs(resolvedID)

	if el.Required && len(instances) < el.MinimumRequiredSets {
		return r.fail(el, resolvedID, fmt.Sprintf("%s requires at least %d entries",
			el.DisplayLabel(), el.MinimumRequiredSets)), nil
	}
	if el.MaximumSets > 0 && len(instances) > el.MaximumSets {
		return r.fail(el, resolvedID, fmt.Sprintf("%s allows at most %d entries",
			el.DisplayLabel(), el.MaximumSets)), nil
	}

	for _, instanceID := range instances {
		instancePrefix := domain.InstancePrefix(resolvedID, instanceID)
		for _, child := range el.Children {
			failure, err := r.validateElement(ctx, child, instancePrefix)
			if failure != nil || err != nil {
				return failure, err
			}
		}
	}
	return nil, nil
}

func (r *run) fail(el *domain.Element, resolvedID, message string) *domain.ValidationFailure {
	r.dctx.SetError(resolvedID, message)
	return &domain.ValidationFailure{
		ElementID: resolvedID,
		Label:     el.Label,
		Message:   message,
	}
}

// isEmptyValue implements the required-field emptiness contract: nil,
// empty string, empty list, empty map.
func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

// validateValueForType runs the variant-owned value check. Empty values
// pass; "required" handles absence separately.
func validateValueForType(el *domain.Element, value any) string {
	if isEmptyValue(value) {
		return ""
	}
	switch el.Type {
	case domain.TypeNumberInput:
		if s, ok := value.(string); ok {
			normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
			if _, err := strconv.ParseFloat(normalized, 64); err != nil {
				return fmt.Sprintf("%s must be a number", el.DisplayLabel())
			}
		}
	case domain.TypeDateInput:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be a date", el.DisplayLabel())
		}
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return ""
			}
		}
		return fmt.Sprintf("%s must be a valid date", el.DisplayLabel())
	case domain.TypeSelectInput:
		if len(el.Options) == 0 {
			return ""
		}
		s := nocode.ToString(value)
		for _, option := range el.Options {
			if option == s {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of the offered choices", el.DisplayLabel())
	case domain.TypeCheckboxInput:
		switch value.(type) {
		case bool, string:
		default:
			return fmt.Sprintf("%s must be a yes/no value", el.DisplayLabel())
		}
	case domain.TypeTableInput:
		if _, ok := value.([]any); !ok {
			return fmt.Sprintf("%s must be a list of rows", el.DisplayLabel())
		}
	}
	return ""
}
