package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/formweave/pkg/domain"
)

const jsonDefinition = `{
  "id": "application",
  "type": "step",
  "label": "Application",
  "children": [
    {
      "id": "name",
      "type": "text",
      "label": "Full name",
      "required": true,
      "destination_key": "APPLICANT_NAME"
    },
    {
      "id": "age",
      "type": 12,
      "label": "Age",
      "validate": {
        "unmet_message": "Applicants must be of age.",
        "all": [
          {"operator": "LessThan", "reference": "age", "value": 18}
        ]
      }
    },
    {
      "id": "household",
      "type": "replicating",
      "label": "Household members",
      "minimum_required_sets": 1,
      "maximum_sets": 4,
      "headline_template": "Member #",
      "children": [
        {"id": "member_name", "type": "text", "label": "Name"}
      ]
    }
  ]
}`

func TestParseJSON(t *testing.T) {
	root, err := Parse([]byte(jsonDefinition))
	require.NoError(t, err)

	assert.Equal(t, "application", root.ID)
	assert.Equal(t, domain.TypeStep, root.Type)
	require.Len(t, root.Children, 3)

	name := root.Children[0]
	assert.Equal(t, domain.TypeTextInput, name.Type)
	assert.True(t, name.Required)
	assert.Equal(t, "APPLICANT_NAME", name.DestinationKey)

	age := root.Children[1]
	assert.Equal(t, domain.TypeNumberInput, age.Type, "legacy numeric code 12 maps to number")
	require.NotNil(t, age.Validate)
	require.True(t, age.Validate.IsNoCode())
	assert.Equal(t, domain.ModeAll, age.Validate.NoCode.Mode)
	assert.Equal(t, "Applicants must be of age.", age.Validate.NoCode.UnmetMessage)
	require.Len(t, age.Validate.NoCode.Conditions, 1)
	assert.Equal(t, "LessThan", age.Validate.NoCode.Conditions[0].Operator)

	household := root.Children[2]
	assert.Equal(t, domain.TypeReplicatingContainer, household.Type)
	assert.Equal(t, 1, household.MinimumRequiredSets)
	assert.Equal(t, 4, household.MaximumSets)
}

func TestParseYAML(t *testing.T) {
	yamlDefinition := `
id: application
type: step
children:
  - id: status
    type: select
    label: Marital status
    options: [single, married]
  - id: partner_name
    type: text
    label: Partner name
    visibility:
      all:
        - operator: Equals
          reference: status
          value: married
  - id: fee
    type: number
    technical: true
    compute_value:
      code: '$status == "married" ? 40 : 20'
`
	root, err := Parse([]byte(yamlDefinition))
	require.NoError(t, err)
	require.Len(t, root.Children, 3)

	partner := root.Children[1]
	require.NotNil(t, partner.Visibility)
	require.True(t, partner.Visibility.IsNoCode())

	fee := root.Children[2]
	assert.True(t, fee.Technical)
	require.NotNil(t, fee.ComputeValue)
	assert.True(t, fee.ComputeValue.IsCode())
}

func TestParseRejectsMalformedDefinitions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", `{"type": "step"}`},
		{"missing type", `{"id": "x"}`},
		{"unknown type", `{"id": "x", "type": "hologram"}`},
		{"unknown legacy code", `{"id": "x", "type": 99}`},
		{"children under input", `{"id": "x", "type": "text", "children": [{"id": "y", "type": "text"}]}`},
		{"validate on container", `{"id": "x", "type": "group", "validate": {"all": [{"operator": "IsTrue", "reference": "x"}]}}`},
		{"no-code patch", `{"id": "x", "type": "text", "patch": {"all": [{"operator": "IsTrue", "reference": "x"}]}}`},
		{"empty condition set", `{"id": "x", "type": "text", "visibility": {"mode": "all"}}`},
		{"condition without reference", `{"id": "x", "type": "text", "visibility": {"all": [{"operator": "IsTrue"}]}}`},
		{"target and literal together", `{"id": "x", "type": "text", "visibility": {"all": [{"operator": "Equals", "reference": "x", "target": "y", "value": 1}]}}`},
		{"empty document", ``},
		{"broken json", `{"id": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
