package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/formweave/pkg/domain"
)

func requiredTextForm() *domain.Element {
	return &domain.Element{
		ID:    "root",
		Type:  domain.TypeStep,
		Label: "Application",
		Children: []*domain.Element{
			{ID: "other", Type: domain.TypeSelectInput, Label: "Other", Options: []string{"yes", "no"}},
			{
				ID:       "details",
				Type:     domain.TypeTextInput,
				Label:    "Details",
				Required: true,
				Visibility: &domain.Function{NoCode: &domain.ConditionSet{
					Mode: domain.ModeAll,
					Conditions: []*domain.Condition{
						{Operator: "Equals", Reference: "other", Value: "yes"},
					},
				}},
			},
		},
	}
}

func TestValidateRequiredField(t *testing.T) {
	engine := NewEngine()
	form := requiredTextForm()

	t.Run("empty required field fails", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{"other": "yes"})
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Equal(t, "details", failure.ElementID)
		assert.Contains(t, failure.Message, "required")
	})

	t.Run("filled required field passes", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{
			"other": "yes", "details": "something",
		})
		require.NoError(t, err)
		assert.Nil(t, failure)
	})

	t.Run("hidden required field is exempt", func(t *testing.T) {
		// details is only visible when other == "yes"; with "no" the
		// empty required field must not fail.
		failure, err := engine.Validate(context.Background(), form, map[string]any{"other": "no"})
		require.NoError(t, err)
		assert.Nil(t, failure)
	})
}

func TestValidateTypeChecks(t *testing.T) {
	engine := NewEngine()
	form := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "age", Type: domain.TypeNumberInput, Label: "Age"},
			{ID: "birthday", Type: domain.TypeDateInput, Label: "Birthday"},
			{ID: "state", Type: domain.TypeSelectInput, Label: "State", Options: []string{"open", "closed"}},
		},
	}

	tests := []struct {
		name    string
		input   map[string]any
		wantID  string
		wantMsg string
	}{
		{"unparsable number", map[string]any{"age": "twelve"}, "age", "must be a number"},
		{"unparsable date", map[string]any{"birthday": "soon"}, "birthday", "valid date"},
		{"choice outside options", map[string]any{"state": "pending"}, "state", "offered choices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure, err := engine.Validate(context.Background(), form, tt.input)
			require.NoError(t, err)
			require.NotNil(t, failure)
			assert.Equal(t, tt.wantID, failure.ElementID)
			assert.Contains(t, failure.Message, tt.wantMsg)
		})
	}

	t.Run("well-formed values pass", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{
			"age": "42", "birthday": "1984-02-29", "state": "open",
		})
		require.NoError(t, err)
		assert.Nil(t, failure)
	})
}

func TestValidateFunctionTruthIsInverted(t *testing.T) {
	engine := NewEngine()

	t.Run("met no-code condition means invalid", func(t *testing.T) {
		form := &domain.Element{
			ID:   "root",
			Type: domain.TypeStep,
			Children: []*domain.Element{
				{
					ID:    "age",
					Type:  domain.TypeNumberInput,
					Label: "Age",
					Validate: &domain.Function{NoCode: &domain.ConditionSet{
						Mode:         domain.ModeAll,
						UnmetMessage: "Applicants must be of age.",
						Conditions: []*domain.Condition{
							{Operator: "LessThan", Reference: "age", Value: 18.0},
						},
					}},
				},
			},
		}

		failure, err := engine.Validate(context.Background(), form, map[string]any{"age": 16.0})
		require.NoError(t, err)
		require.NotNil(t, failure, "a MET validate condition signals an invalid value")
		assert.Equal(t, "Applicants must be of age.", failure.Message)

		failure, err = engine.Validate(context.Background(), form, map[string]any{"age": 21.0})
		require.NoError(t, err)
		assert.Nil(t, failure)
	})

	t.Run("truthy script result means invalid, string result is the message", func(t *testing.T) {
		form := &domain.Element{
			ID:   "root",
			Type: domain.TypeStep,
			Children: []*domain.Element{
				{
					ID:       "iban",
					Type:     domain.TypeTextInput,
					Label:    "IBAN",
					Validate: &domain.Function{Code: `len($iban) < 15 ? "IBAN is too short" : false`},
				},
			},
		}

		failure, err := engine.Validate(context.Background(), form, map[string]any{"iban": "DE1234"})
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Equal(t, "IBAN is too short", failure.Message)

		failure, err = engine.Validate(context.Background(), form, map[string]any{"iban": "DE02120300000000202051"})
		require.NoError(t, err)
		assert.Nil(t, failure)
	})

	t.Run("broken validate script degrades to invalid", func(t *testing.T) {
		form := &domain.Element{
			ID:   "root",
			Type: domain.TypeStep,
			Children: []*domain.Element{
				{
					ID:       "x",
					Type:     domain.TypeTextInput,
					Label:    "X",
					Validate: &domain.Function{Code: `broken(`},
				},
			},
		}
		failure, err := engine.Validate(context.Background(), form, map[string]any{"x": "value"})
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Contains(t, failure.Message, "could not be validated")
	})
}

func TestValidateReplication(t *testing.T) {
	engine := NewEngine()
	form := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{
				ID:                  "household",
				Type:                domain.TypeReplicatingContainer,
				Label:               "Household members",
				Required:            true,
				MinimumRequiredSets: 2,
				MaximumSets:         3,
				Children: []*domain.Element{
					{ID: "name", Type: domain.TypeTextInput, Label: "Name", Required: true},
				},
			},
		},
	}

	t.Run("too few instances", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{
			"household": []any{"a"},
		})
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Contains(t, failure.Message, "at least 2")
	})

	t.Run("too many instances", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{
			"household": []any{"a", "b", "c", "d"},
		})
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Contains(t, failure.Message, "at most 3")
	})

	t.Run("instance children validate under their prefix", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{
			"household":        []any{"a", "b"},
			"household_a_name": "Ada",
			// household_b_name missing
		})
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Equal(t, "household_b_name", failure.ElementID)
	})

	t.Run("complete submission passes", func(t *testing.T) {
		failure, err := engine.Validate(context.Background(), form, map[string]any{
			"household":        []any{"a", "b"},
			"household_a_name": "Ada",
			"household_b_name": "Grace",
		})
		require.NoError(t, err)
		assert.Nil(t, failure)
	})
}

func TestValidateTechnicalFieldsAreSkipped(t *testing.T) {
	engine := NewEngine()
	form := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "internal", Type: domain.TypeTextInput, Required: true, Technical: true},
		},
	}
	failure, err := engine.Validate(context.Background(), form, nil)
	require.NoError(t, err)
	assert.Nil(t, failure, "technical inputs are excluded from validation")
}

func TestValidateFirstFailureAborts(t *testing.T) {
	engine := NewEngine()
	form := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "first", Type: domain.TypeTextInput, Label: "First", Required: true},
			{ID: "second", Type: domain.TypeTextInput, Label: "Second", Required: true},
		},
	}
	failure, err := engine.Validate(context.Background(), form, nil)
	require.NoError(t, err)
	require.NotNil(t, failure)
	assert.Equal(t, "first", failure.ElementID, "the walk stops at the first failure")
}

func TestValidatePatchErrorIsInternal(t *testing.T) {
	engine := NewEngine()
	form := &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "x", Type: domain.TypeTextInput, Patch: &domain.Function{Code: `broken(`}},
		},
	}
	_, err := engine.Validate(context.Background(), form, nil)
	require.Error(t, err, "patch scripts drive data integrity; their failures propagate")
	var scriptErr *domain.ScriptError
	assert.ErrorAs(t, err, &scriptErr)
}
