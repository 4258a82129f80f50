// Package validator checks a parsed form definition for authoring
// errors before it is ever evaluated against a citizen's submission.
package validator

import (
	"fmt"
	"strings"

	"github.com/formweave/formweave/internal/compiler"
	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
)

// Report is the outcome of a definition check. Errors make the
// definition unusable; warnings (dangling references) are legal at
// runtime but almost always author mistakes.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the definition is usable.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Summary renders the report for CLI output.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "error: %s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	return b.String()
}

// ValidateDefinition runs every authoring-time check: structural
// invariants, operator existence and arity plausibility, and a
// dangling-reference lint.
func ValidateDefinition(root *domain.Element) *Report {
	report := &Report{}

	if err := compiler.ValidateStructure(root); err != nil {
		report.Errors = append(report.Errors, err.Error())
	}

	checkOperators(root, report)

	for _, id := range compiler.DanglingReferences(root) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("condition references %q, which matches no element (will evaluate as unmet)", id))
	}

	return report
}

// checkOperators verifies that every condition names a registered
// operator with a compatible arity. A malformed operator reference
// must fail during authoring, not in front of a citizen.
func checkOperators(root *domain.Element, report *Report) {
	var walkSet func(elID string, set *domain.ConditionSet)
	walkSet = func(elID string, set *domain.ConditionSet) {
		if set == nil {
			return
		}
		for _, cond := range set.Conditions {
			op, ok := nocode.Lookup(cond.Operator)
			if !ok {
				report.Errors = append(report.Errors,
					fmt.Sprintf("element %q: unknown operator %q", elID, cond.Operator))
				continue
			}
			if op.Arity() > 2 || op.Arity() < 1 {
				report.Errors = append(report.Errors,
					fmt.Sprintf("element %q: operator %q cannot be used in a condition (arity %d)",
						elID, cond.Operator, op.Arity()))
			}
			hasRight := cond.Target != "" || cond.Value != nil
			if op.Arity() == 2 && !hasRight {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("element %q: operator %q expects a right operand but the condition supplies none",
						elID, cond.Operator))
			}
		}
		for _, nested := range set.Sets {
			walkSet(elID, nested)
		}
	}

	var walk func(el *domain.Element)
	walk = func(el *domain.Element) {
		for _, fn := range []*domain.Function{el.Visibility, el.Patch, el.Validate, el.ComputeValue} {
			if fn != nil {
				walkSet(el.ID, fn.NoCode)
			}
		}
		for _, child := range el.Children {
			walk(child)
		}
	}
	walk(root)
}
