// Package file implements ports.DefinitionLoader over a local
// directory of definition documents.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// definition documents are recognized by extension.
var extensions = []string{".json", ".yaml", ".yml"}

// Loader reads form definitions from a directory. A definition named
// "application" is looked up as application.json, application.yaml or
// application.yml, in that order.
type Loader struct {
	BasePath string
}

// New creates a Loader rooted at basePath.
func New(basePath string) (*Loader, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("definition directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("definition path %q is not a directory", basePath)
	}
	return &Loader{BasePath: basePath}, nil
}

// GetDefinition retrieves the raw definition document by name.
func (l *Loader) GetDefinition(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("definition name %q must not contain path separators", name)
	}
	for _, ext := range extensions {
		data, err := os.ReadFile(filepath.Join(l.BasePath, name+ext))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read definition %q: %w", name, err)
		}
	}
	return nil, fmt.Errorf("definition not found: %s", name)
}

// ListDefinitions returns the sorted names of all definition documents
// in the directory.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	seen := map[string]bool{}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, known := range extensions {
			if strings.EqualFold(ext, known) {
				name := strings.TrimSuffix(entry.Name(), ext)
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
