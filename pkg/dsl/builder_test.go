package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/formweave/pkg/domain"
)

func TestBuilderProducesElementTree(t *testing.T) {
	root := Step("application").Label("Application").Children(
		Select("status", "single", "married").Required(),
		Text("partner").Label("Partner name").VisibleWhen(
			All(When("Equals", "status").Value("married")),
		),
		Replicating("household").Label("Household").Sets(1, 4).Headline("Member #").Children(
			Text("name").Required(),
			Date("birthdate"),
		),
	).Build()

	require.Len(t, root.Children, 3)
	assert.Equal(t, domain.TypeStep, root.Type)
	assert.Equal(t, "Application", root.Label)

	status := root.Children[0]
	assert.Equal(t, domain.TypeSelectInput, status.Type)
	assert.True(t, status.Required)
	assert.Equal(t, []string{"single", "married"}, status.Options)

	partner := root.Children[1]
	require.NotNil(t, partner.Visibility)
	require.NotNil(t, partner.Visibility.NoCode)
	set := partner.Visibility.NoCode
	assert.Equal(t, domain.ModeAll, set.Mode)
	require.Len(t, set.Conditions, 1)
	assert.Equal(t, "Equals", set.Conditions[0].Operator)
	assert.Equal(t, "status", set.Conditions[0].Reference)
	assert.Equal(t, "married", set.Conditions[0].Value)

	household := root.Children[2]
	assert.Equal(t, domain.TypeReplicatingContainer, household.Type)
	assert.Equal(t, 1, household.MinimumRequiredSets)
	assert.Equal(t, 4, household.MaximumSets)
	assert.Equal(t, "Member #", household.HeadlineTemplate)
	require.Len(t, household.Children, 2)
}

func TestBuilderIsReusable(t *testing.T) {
	b := Text("name").Label("Name")
	first := b.Build()
	second := b.Required().Build()

	assert.False(t, first.Required, "earlier Build result must not see later mutations")
	assert.True(t, second.Required)
}

func TestNestedConditionSets(t *testing.T) {
	set := Any(
		When("IsTrue", "express"),
		All(
			When("GreaterThan", "age").Value(18),
			When("Equals", "country").Target("residence"),
		).UnmetMessage("adult residents only"),
	).Build()

	assert.Equal(t, domain.ModeAny, set.Mode)
	require.Len(t, set.Conditions, 1)
	require.Len(t, set.Sets, 1)
	nested := set.Sets[0]
	assert.Equal(t, "adult residents only", nested.UnmetMessage)
	assert.Equal(t, "residence", nested.Conditions[1].Target)
}

func TestBadMemberPanics(t *testing.T) {
	assert.Panics(t, func() { All("not a condition") })
}
