package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/formweave/pkg/domain"
)

func TestValidateStructureDuplicateIDs(t *testing.T) {
	tree := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "name", Type: domain.TypeTextInput},
			{ID: "name", Type: domain.TypeNumberInput},
		},
	}
	err := ValidateStructure(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate resolved id")
}

func TestValidateStructureAllowsSameIDAcrossReplicationNamespaces(t *testing.T) {
	// "name" under a replicating container resolves with an instance
	// prefix and can never collide with the top-level "name".
	tree := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "name", Type: domain.TypeTextInput},
			{
				ID:   "household",
				Type: domain.TypeReplicatingContainer,
				Children: []*domain.Element{
					{ID: "name", Type: domain.TypeTextInput},
				},
			},
		},
	}
	assert.NoError(t, ValidateStructure(tree))
}

func TestValidateStructureReplicationBounds(t *testing.T) {
	tree := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{
				ID:                  "household",
				Type:                domain.TypeReplicatingContainer,
				MinimumRequiredSets: 5,
				MaximumSets:         2,
			},
		},
	}
	err := ValidateStructure(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum_sets")
}

func TestDanglingReferences(t *testing.T) {
	tree := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "status", Type: domain.TypeSelectInput},
			{
				ID:   "partner",
				Type: domain.TypeTextInput,
				Visibility: &domain.Function{NoCode: &domain.ConditionSet{
					Mode: domain.ModeAll,
					Conditions: []*domain.Condition{
						{Operator: "Equals", Reference: "status", Value: "married"},
						{Operator: "Equals", Reference: "ghost", Value: "x"},
					},
				}},
			},
		},
	}
	assert.Equal(t, []string{"ghost"}, DanglingReferences(tree))
}
