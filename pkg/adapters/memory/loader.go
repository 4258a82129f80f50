// Package memory implements ports.DefinitionLoader in memory, mainly
// for tests and embedded use.
package memory

import (
	"context"
	"fmt"
	"sort"
)

// Loader holds definition documents in a map.
type Loader struct {
	definitions map[string][]byte
}

// New creates an empty loader.
func New() *Loader {
	return &Loader{definitions: make(map[string][]byte)}
}

// Add pre-populates a definition.
func (l *Loader) Add(name string, data []byte) {
	l.definitions[name] = data
}

// GetDefinition retrieves a definition document.
func (l *Loader) GetDefinition(ctx context.Context, name string) ([]byte, error) {
	data, ok := l.definitions[name]
	if !ok {
		return nil, fmt.Errorf("definition not found: %s", name)
	}
	return data, nil
}

// ListDefinitions returns the sorted definition names.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(l.definitions))
	for name := range l.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
