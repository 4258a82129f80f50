// Package ports defines the interfaces through which the engine talks
// to its collaborators. Storage of form definitions and submissions is
// a collaborator concern; the engine only consumes what these ports
// deliver.
package ports

import "context"

// DefinitionLoader retrieves raw form-definition documents. The engine
// parses the bytes eagerly into the typed element tree; how and where
// the documents are stored (filesystem, database, object store) is the
// adapter's business.
type DefinitionLoader interface {
	// GetDefinition retrieves the raw definition document by name.
	GetDefinition(ctx context.Context, name string) ([]byte, error)

	// ListDefinitions returns the names of all available definitions,
	// used by tooling and the authoring UI.
	ListDefinitions(ctx context.Context) ([]string, error)
}

// ValueLoader retrieves a flat input-value document (resolved id to
// JSON value) for one submission.
type ValueLoader interface {
	GetValues(ctx context.Context, submissionID string) (map[string]any, error)
}
