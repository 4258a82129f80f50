package compiler

import (
	"fmt"

	"github.com/formweave/formweave/pkg/domain"
)

// ValidateStructure enforces the invariants evaluation relies on:
// resolved-id uniqueness within each replication namespace, children
// only under containers, and sane replication bounds. It runs before
// any evaluation; a tree that fails here never reaches a citizen.
func ValidateStructure(root *domain.Element) error {
	if root == nil {
		return fmt.Errorf("nil element tree")
	}
	seen := map[string]string{}
	return checkElement(root, "", "", seen)
}

// checkElement walks the tree. namespace is the chain of replicating
// ancestors: elements in different namespaces can never collide because
// replication prefixes their resolved ids with distinct instance paths.
func checkElement(el *domain.Element, namespace, path string, seen map[string]string) error {
	at := path + "/" + el.ID

	key := namespace + "|" + el.ID
	if prev, dup := seen[key]; dup {
		return fmt.Errorf("duplicate resolved id %q (declared at %s and %s)", el.ID, prev, at)
	}
	seen[key] = at

	if len(el.Children) > 0 && !el.IsContainer() {
		return fmt.Errorf("element %s: type %q cannot own children", at, el.Type)
	}

	if el.Type == domain.TypeReplicatingContainer {
		if el.MinimumRequiredSets < 0 || el.MaximumSets < 0 {
			return fmt.Errorf("element %s: negative replication bounds", at)
		}
		if el.MaximumSets > 0 && el.MinimumRequiredSets > el.MaximumSets {
			return fmt.Errorf("element %s: minimum_required_sets %d exceeds maximum_sets %d",
				at, el.MinimumRequiredSets, el.MaximumSets)
		}
		// Children of a replicating container live in their own
		// namespace, keyed by the container's id chain.
		namespace = namespace + ">" + el.ID
	}

	for _, child := range el.Children {
		if err := checkElement(child, namespace, at, seen); err != nil {
			return err
		}
	}
	return nil
}

// DanglingReferences lints every condition in the tree and returns the
// reference/target ids that match no element. Dangling references are
// legal at runtime (they degrade to unmet conditions), but authors
// want to hear about them before a citizen does.
func DanglingReferences(root *domain.Element) []string {
	var out []string
	seen := map[string]bool{}
	report := func(id string) {
		if id != "" && domain.FindDescendant(root, id) == nil && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	var walkSet func(set *domain.ConditionSet)
	walkSet = func(set *domain.ConditionSet) {
		if set == nil {
			return
		}
		for _, cond := range set.Conditions {
			report(cond.Reference)
			report(cond.Target)
		}
		for _, nested := range set.Sets {
			walkSet(nested)
		}
	}

	var walk func(el *domain.Element)
	walk = func(el *domain.Element) {
		for _, fn := range []*domain.Function{el.Visibility, el.Patch, el.Validate, el.ComputeValue} {
			if fn != nil {
				walkSet(fn.NoCode)
			}
		}
		for _, child := range el.Children {
			walk(child)
		}
	}
	walk(root)
	return out
}
