// Package domain contains the pure data model of the form derivation
// engine: the element tree, author-supplied functions, condition sets,
// printable rows and the error taxonomy.
//
// Types in this package carry no behavior beyond addressing and simple
// accessors. Evaluation (scripts, conditions, validation, row
// generation) lives in the internal runtime and consumes these types
// read-only; a parsed element tree is immutable and safe to share
// across concurrent evaluations.
package domain
