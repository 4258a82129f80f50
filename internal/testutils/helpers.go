// Package testutils holds shared helpers for the engine's test suites.
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formweave/formweave/internal/compiler"
	"github.com/formweave/formweave/pkg/domain"
)

// MustParse parses a definition document and fails the test on error.
func MustParse(t *testing.T, src string) *domain.Element {
	t.Helper()
	root, err := compiler.Parse([]byte(src))
	require.NoError(t, err, "failed to parse definition")
	return root
}

// SampleApplication is a small but complete definition document used by
// the facade and CLI tests: a step with a select input, a conditionally
// visible text input and a replicating container.
const SampleApplication = `{
  "id": "application",
  "type": "step",
  "label": "Application",
  "children": [
    {
      "id": "marital_status",
      "type": "select",
      "label": "Marital status",
      "required": true,
      "options": ["single", "married"]
    },
    {
      "id": "partner_name",
      "type": "text",
      "label": "Partner name",
      "required": true,
      "visibility": {
        "all": [
          {"operator": "Equals", "reference": "marital_status", "value": "married"}
        ]
      }
    },
    {
      "id": "household",
      "type": "replicating",
      "label": "Household members",
      "headline_template": "Member #",
      "minimum_required_sets": 1,
      "maximum_sets": 4,
      "children": [
        {"id": "name", "type": "text", "label": "Name", "required": true},
        {"id": "birthdate", "type": "date", "label": "Date of birth"}
      ]
    }
  ]
}`
