// Package nocode provides the closed set of pure, typed operators that
// form authors can combine into conditions and expressions without
// writing script. Operators are grouped into packages (boolean, text,
// comparison, arithmetic, replication) and listed in a registry that is
// consulted both by the condition evaluator and by authoring UIs via
// Catalog.
//
// The cast rules in this package are part of the platform contract:
// existing form definitions rely on their exact semantics (empty string
// is false, an unparsable numeric string is zero, a list casts to its
// length). Do not "fix" them.
package nocode
