package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
)

// Counting stub operators to observe short-circuit behavior.
var (
	stubFailCalls int
	stubPassCalls int
)

func init() {
	boolParam := []nocode.Param{{Name: "value", Type: nocode.ParamAny}}
	nocode.Register(nocode.NewOperator("StubFail", "test", "stub fail", "Never met; counts calls.",
		boolParam, nocode.ParamBoolean, func(args []any) (any, error) {
			stubFailCalls++
			return false, nil
		}))
	nocode.Register(nocode.NewOperator("StubPass", "test", "stub pass", "Always met; counts calls.",
		boolParam, nocode.ParamBoolean, func(args []any) (any, error) {
			stubPassCalls++
			return true, nil
		}))
}

func newConditionRun(root *domain.Element, input map[string]any) *run {
	return NewEngine().newRun(root, input, false)
}

func conditionTree() *domain.Element {
	return &domain.Element{
		ID:   "root",
		Type: domain.TypeStep,
		Children: []*domain.Element{
			{ID: "status", Type: domain.TypeSelectInput},
			{ID: "age", Type: domain.TypeNumberInput},
			{ID: "secret", Type: domain.TypeTextInput},
			{ID: "household", Type: domain.TypeReplicatingContainer, Children: []*domain.Element{
				{ID: "name", Type: domain.TypeTextInput},
			}},
		},
	}
}

func TestAllShortCircuitsOnFirstUnmet(t *testing.T) {
	stubFailCalls, stubPassCalls = 0, 0
	r := newConditionRun(conditionTree(), nil)

	set := &domain.ConditionSet{
		Mode:         domain.ModeAll,
		UnmetMessage: "not all met",
		Conditions: []*domain.Condition{
			{Operator: "StubFail", Reference: "status"},
			{Operator: "StubPass", Reference: "status"},
		},
	}

	met, message, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, "not all met", message)
	assert.Equal(t, 1, stubFailCalls)
	assert.Equal(t, 0, stubPassCalls, "second condition must not be evaluated")
}

func TestAnyShortCircuitsOnFirstMet(t *testing.T) {
	stubFailCalls, stubPassCalls = 0, 0
	r := newConditionRun(conditionTree(), nil)

	set := &domain.ConditionSet{
		Mode: domain.ModeAny,
		Conditions: []*domain.Condition{
			{Operator: "StubPass", Reference: "status"},
			{Operator: "StubFail", Reference: "status"},
		},
	}

	met, _, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.True(t, met)
	assert.Equal(t, 1, stubPassCalls)
	assert.Equal(t, 0, stubFailCalls, "evaluation must stop after the first met condition")
}

func TestAnyReportsConfiguredMessageWhenNothingMet(t *testing.T) {
	r := newConditionRun(conditionTree(), nil)

	set := &domain.ConditionSet{
		Mode:         domain.ModeAny,
		UnmetMessage: "pick at least one",
		Conditions: []*domain.Condition{
			{Operator: "StubFail", Reference: "status"},
		},
	}
	met, message, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, "pick at least one", message)
}

func TestDanglingReferenceDegradesToUnmet(t *testing.T) {
	r := newConditionRun(conditionTree(), nil)

	set := &domain.ConditionSet{
		Mode: domain.ModeAll,
		Conditions: []*domain.Condition{
			{Operator: "IsTrue", Reference: "ghost"},
		},
	}
	met, message, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err, "a dangling reference is not a fault")
	assert.False(t, met)
	assert.Contains(t, message, `"ghost" not found`)
}

func TestInvisibleReferenceValueIsAbsent(t *testing.T) {
	r := newConditionRun(conditionTree(), map[string]any{"secret": "stored"})
	r.dctx.SetVisibility("secret", false)

	set := &domain.ConditionSet{
		Mode: domain.ModeAll,
		Conditions: []*domain.Condition{
			{Operator: "IsNotEmpty", Reference: "secret"},
		},
	}
	met, _, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.False(t, met, "an invisible element's value must read as absent, not its stored value")
}

func TestTargetSuppliesRightOperand(t *testing.T) {
	r := newConditionRun(conditionTree(), map[string]any{"age": 21.0, "secret": "21"})

	set := &domain.ConditionSet{
		Mode: domain.ModeAll,
		Conditions: []*domain.Condition{
			{Operator: "Equals", Reference: "age", Target: "secret"},
		},
	}
	met, _, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.True(t, met, "target value must be cast to the reference element's type")
}

func TestReplicatingContainerLengthSemantics(t *testing.T) {
	r := newConditionRun(conditionTree(), map[string]any{"household": []any{"a", "b", "c"}})

	set := &domain.ConditionSet{
		Mode: domain.ModeAll,
		Conditions: []*domain.Condition{
			{Operator: "ReplicatingListLengthGreaterThanOrEqual", Reference: "household", Value: 2.0},
		},
	}
	met, _, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.True(t, met)

	empty := newConditionRun(conditionTree(), nil)
	met, _, err = empty.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.False(t, met, "an absent instance list compares as empty")
}

func TestUnknownOperatorSurfaces(t *testing.T) {
	r := newConditionRun(conditionTree(), nil)

	set := &domain.ConditionSet{
		Mode: domain.ModeAll,
		Conditions: []*domain.Condition{
			{Operator: "NoSuchOperator", Reference: "status"},
		},
	}
	_, _, err := r.evaluateConditionSet(context.Background(), set, "")
	require.Error(t, err)
	var unknownErr *domain.UnknownOperatorError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestNestedSetsCombine(t *testing.T) {
	r := newConditionRun(conditionTree(), map[string]any{"status": "married", "age": 17.0})

	// married AND (age >= 18 OR age missing-check) -> unmet via nested set.
	set := &domain.ConditionSet{
		Mode: domain.ModeAll,
		Conditions: []*domain.Condition{
			{Operator: "Equals", Reference: "status", Value: "married"},
		},
		Sets: []*domain.ConditionSet{
			{
				Mode:         domain.ModeAny,
				UnmetMessage: "age requirement not met",
				Conditions: []*domain.Condition{
					{Operator: "GreaterThanOrEqual", Reference: "age", Value: 18.0},
				},
			},
		},
	}
	met, message, err := r.evaluateConditionSet(context.Background(), set, "")
	require.NoError(t, err)
	assert.False(t, met)
	assert.Equal(t, "age requirement not met", message)
}
