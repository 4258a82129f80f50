package dsl

import "github.com/formweave/formweave/pkg/domain"

// ElementBuilder provides a fluent API for configuring a single element.
type ElementBuilder struct {
	el domain.Element
}

func newElement(id string, t domain.ElementType) *ElementBuilder {
	return &ElementBuilder{el: domain.Element{ID: id, Type: t}}
}

// Step creates a top-level structural element that renders a headline.
func Step(id string) *ElementBuilder { return newElement(id, domain.TypeStep) }

// Group creates a structural element that is transparent in rendering.
func Group(id string) *ElementBuilder { return newElement(id, domain.TypeGroup) }

// Replicating creates a container whose subtree repeats per instance.
func Replicating(id string) *ElementBuilder {
	return newElement(id, domain.TypeReplicatingContainer)
}

// Text creates a single-line text input.
func Text(id string) *ElementBuilder { return newElement(id, domain.TypeTextInput) }

// Textarea creates a multi-line text input.
func Textarea(id string) *ElementBuilder { return newElement(id, domain.TypeTextareaInput) }

// Number creates a numeric input.
func Number(id string) *ElementBuilder { return newElement(id, domain.TypeNumberInput) }

// Date creates a date input.
func Date(id string) *ElementBuilder { return newElement(id, domain.TypeDateInput) }

// Checkbox creates a boolean input.
func Checkbox(id string) *ElementBuilder { return newElement(id, domain.TypeCheckboxInput) }

// Select creates a choice input restricted to the given options.
func Select(id string, options ...string) *ElementBuilder {
	b := newElement(id, domain.TypeSelectInput)
	b.el.Options = options
	return b
}

// Table creates a tabular input with the given column headers.
func Table(id string, headers ...string) *ElementBuilder {
	b := newElement(id, domain.TypeTableInput)
	b.el.Headers = headers
	return b
}

// Label sets the human-readable caption.
func (b *ElementBuilder) Label(label string) *ElementBuilder {
	b.el.Label = label
	return b
}

// Required marks the input as mandatory when visible.
func (b *ElementBuilder) Required() *ElementBuilder {
	b.el.Required = true
	return b
}

// Disabled marks the input as excluded from template rendering.
func (b *ElementBuilder) Disabled() *ElementBuilder {
	b.el.Disabled = true
	return b
}

// Technical marks the element as internal: never rendered, never
// validated, but still readable by conditions and scripts.
func (b *ElementBuilder) Technical() *ElementBuilder {
	b.el.Technical = true
	return b
}

// DestinationKey sets the export key used when mapping values out.
func (b *ElementBuilder) DestinationKey(key string) *ElementBuilder {
	b.el.DestinationKey = key
	return b
}

// Meta attaches a metadata key-value pair.
func (b *ElementBuilder) Meta(key, value string) *ElementBuilder {
	if b.el.Metadata == nil {
		b.el.Metadata = make(map[string]string)
	}
	b.el.Metadata[key] = value
	return b
}

// VisibleWhen gates the element on a condition set.
func (b *ElementBuilder) VisibleWhen(set *ConditionSetBuilder) *ElementBuilder {
	b.el.Visibility = &domain.Function{NoCode: set.Build()}
	return b
}

// VisibilityScript gates the element on a script snippet.
func (b *ElementBuilder) VisibilityScript(code string) *ElementBuilder {
	b.el.Visibility = &domain.Function{Code: code}
	return b
}

// InvalidWhen rejects the value when the condition set is met. Note the
// polarity: a met set means the value is invalid.
func (b *ElementBuilder) InvalidWhen(set *ConditionSetBuilder) *ElementBuilder {
	b.el.Validate = &domain.Function{NoCode: set.Build()}
	return b
}

// ValidateScript rejects the value when the script yields a truthy
// result; a string result doubles as the failure message.
func (b *ElementBuilder) ValidateScript(code string) *ElementBuilder {
	b.el.Validate = &domain.Function{Code: code}
	return b
}

// ComputeScript derives the input's value when none is supplied.
func (b *ElementBuilder) ComputeScript(code string) *ElementBuilder {
	b.el.ComputeValue = &domain.Function{Code: code}
	return b
}

// PatchScript rewrites the element's attributes from script output
// before they are read.
func (b *ElementBuilder) PatchScript(code string) *ElementBuilder {
	b.el.Patch = &domain.Function{Code: code}
	return b
}

// Sets bounds the instance count of a replicating container.
func (b *ElementBuilder) Sets(min, max int) *ElementBuilder {
	b.el.MinimumRequiredSets = min
	b.el.MaximumSets = max
	return b
}

// Headline sets the per-instance headline template; '#' is replaced
// with the 1-based instance index.
func (b *ElementBuilder) Headline(template string) *ElementBuilder {
	b.el.HeadlineTemplate = template
	return b
}

// NoDataText sets the text rendered when no instances exist.
func (b *ElementBuilder) NoDataText(text string) *ElementBuilder {
	b.el.NoDataText = text
	return b
}

// Children appends child elements to a container.
func (b *ElementBuilder) Children(children ...*ElementBuilder) *ElementBuilder {
	for _, child := range children {
		b.el.Children = append(b.el.Children, child.Build())
	}
	return b
}

// Build returns the underlying element.
func (b *ElementBuilder) Build() *domain.Element {
	el := b.el
	return &el
}

// ConditionSetBuilder assembles a condition set.
type ConditionSetBuilder struct {
	set domain.ConditionSet
}

// All creates a set met when every member is met.
func All(members ...any) *ConditionSetBuilder {
	return newSet(domain.ModeAll, members)
}

// Any creates a set met when at least one member is met.
func Any(members ...any) *ConditionSetBuilder {
	return newSet(domain.ModeAny, members)
}

func newSet(mode domain.ConditionMode, members []any) *ConditionSetBuilder {
	b := &ConditionSetBuilder{set: domain.ConditionSet{Mode: mode}}
	for _, m := range members {
		switch v := m.(type) {
		case *ConditionBuilder:
			b.set.Conditions = append(b.set.Conditions, v.Build())
		case *ConditionSetBuilder:
			b.set.Sets = append(b.set.Sets, v.Build())
		default:
			panic("dsl: condition set members must be conditions or nested sets")
		}
	}
	return b
}

// UnmetMessage overrides the message reported when the set is unmet.
func (b *ConditionSetBuilder) UnmetMessage(msg string) *ConditionSetBuilder {
	b.set.UnmetMessage = msg
	return b
}

// Build returns the underlying condition set.
func (b *ConditionSetBuilder) Build() *domain.ConditionSet {
	set := b.set
	return &set
}

// ConditionBuilder assembles a single condition.
type ConditionBuilder struct {
	cond domain.Condition
}

// When creates a condition applying the named operator to the value of
// the referenced element.
func When(operator, reference string) *ConditionBuilder {
	return &ConditionBuilder{cond: domain.Condition{Operator: operator, Reference: reference}}
}

// Value supplies a literal right operand.
func (b *ConditionBuilder) Value(v any) *ConditionBuilder {
	b.cond.Value = v
	return b
}

// Target supplies another element's value as the right operand.
func (b *ConditionBuilder) Target(id string) *ConditionBuilder {
	b.cond.Target = id
	return b
}

// Build returns the underlying condition.
func (b *ConditionBuilder) Build() *domain.Condition {
	cond := b.cond
	return &cond
}
