package domain

import "strings"

// PrefixSeparator joins a replication prefix and a local id into a
// resolved id. Resolved ids are the addressing keys of every value,
// visibility, error and override map.
const PrefixSeparator = "_"

// Resolve qualifies a local id with a replication-instance prefix.
// An empty prefix leaves the id untouched.
func Resolve(id, prefix string) string {
	if prefix == "" {
		return id
	}
	return prefix + PrefixSeparator + id
}

// InstancePrefix builds the prefix under which the children of a
// replicating container instance are addressed.
func InstancePrefix(containerResolvedID, instanceID string) string {
	return containerResolvedID + PrefixSeparator + instanceID
}

// FindDescendant searches root and all of its descendants depth-first,
// left-to-right, for an element with the given local id. The match is
// on the local id, not the resolved id: a condition may name an element
// anywhere in the definition, including inside a different replicated
// instance, with the caller supplying the prefix context at evaluation
// time. Returns nil when no element matches; callers must treat that as
// an unmet condition, not a fault (form authors can and do create
// dangling references).
func FindDescendant(root *Element, id string) *Element {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindDescendant(child, id); found != nil {
			return found
		}
	}
	return nil
}

// SplitResolved splits a resolved id into its prefix and local id.
// Returns an empty prefix when the id carries none.
func SplitResolved(resolvedID string) (prefix, id string) {
	idx := strings.LastIndex(resolvedID, PrefixSeparator)
	if idx < 0 {
		return "", resolvedID
	}
	return resolvedID[:idx], resolvedID[idx+1:]
}
