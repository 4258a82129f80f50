// Package formweave derives documents from declarative form
// definitions: a single element tree describes a form's structure,
// visibility rules, computed values and validation rules, and the
// engine evaluates submissions against it to produce validation
// verdicts and printable row sequences.
//
// Definitions are authored as JSON or YAML documents (or assembled in
// code with pkg/dsl) and hold two kinds of logic: sandboxed script
// snippets and no-code condition sets built from a registry of typed
// operators. Both read element values by id; inside a replicating
// container, ids are resolved per instance so the same rule text works
// for every repetition.
//
// Typical use:
//
//	engine := formweave.New()
//	root, err := engine.ParseDefinition(doc)
//	if err != nil { ... }
//	failure, err := engine.Validate(ctx, root, values)
//	rows, err := engine.Rows(ctx, root, values)
package formweave
