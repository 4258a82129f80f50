package runtime

import (
	"github.com/google/uuid"

	"github.com/formweave/formweave/pkg/domain"
)

// DerivationContext is the per-run aggregate consulted during one
// traversal: citizen-supplied input values, script/no-code derived
// computed values, resolved visibilities, validation errors and element
// overrides. It is created fresh for every validation or render
// request, never persisted and never shared across requests.
type DerivationContext struct {
	// RunID correlates all log lines of one traversal.
	RunID string

	input        map[string]any
	computed     map[string]any
	visibilities map[string]bool
	errors       map[string]string
	overrides    map[string]*domain.Element
}

// NewDerivationContext builds a fresh context over the given input
// values. The input map is treated as immutable for the run.
func NewDerivationContext(input map[string]any) *DerivationContext {
	if input == nil {
		input = map[string]any{}
	}
	return &DerivationContext{
		RunID:        uuid.NewString(),
		input:        input,
		computed:     map[string]any{},
		visibilities: map[string]bool{},
		errors:       map[string]string{},
		overrides:    map[string]*domain.Element{},
	}
}

// GetValue returns the effective value for a resolved id. Input always
// wins over computed; absent means nil.
func (c *DerivationContext) GetValue(resolvedID string) any {
	if v, ok := c.input[resolvedID]; ok {
		return v
	}
	if v, ok := c.computed[resolvedID]; ok {
		return v
	}
	return nil
}

// HasInput reports whether the citizen supplied a value for the id.
func (c *DerivationContext) HasInput(resolvedID string) bool {
	_, ok := c.input[resolvedID]
	return ok
}

// SetComputed stores a derived value. It never shadows input on read;
// GetValue checks input first.
func (c *DerivationContext) SetComputed(resolvedID string, value any) {
	c.computed[resolvedID] = value
}

// IsVisible reads the resolved visibility, defaulting to visible.
func (c *DerivationContext) IsVisible(resolvedID string) bool {
	v, ok := c.visibilities[resolvedID]
	return !ok || v
}

// IsInvisible is the negation of IsVisible.
func (c *DerivationContext) IsInvisible(resolvedID string) bool {
	return !c.IsVisible(resolvedID)
}

// SetVisibility records the outcome of a visibility function.
func (c *DerivationContext) SetVisibility(resolvedID string, visible bool) {
	c.visibilities[resolvedID] = visible
}

// SetError records a validation error message. An empty message clears
// the entry.
func (c *DerivationContext) SetError(resolvedID, message string) {
	if message == "" {
		delete(c.errors, resolvedID)
		return
	}
	c.errors[resolvedID] = message
}

// GetError returns the recorded message, or "" when there is none.
func (c *DerivationContext) GetError(resolvedID string) string {
	return c.errors[resolvedID]
}

// SetOverride records a patched element snapshot. A nil element clears
// the entry.
func (c *DerivationContext) SetOverride(resolvedID string, el *domain.Element) {
	if el == nil {
		delete(c.overrides, resolvedID)
		return
	}
	c.overrides[resolvedID] = el
}

// GetOverride returns the patched snapshot, or nil.
func (c *DerivationContext) GetOverride(resolvedID string) *domain.Element {
	return c.overrides[resolvedID]
}

// CombinedValues merges computed values first and overlays input values
// on top (input wins). This is the effective answer set exposed to
// scripts and downstream consumers.
func (c *DerivationContext) CombinedValues() map[string]any {
	out := make(map[string]any, len(c.computed)+len(c.input))
	for k, v := range c.computed {
		out[k] = v
	}
	for k, v := range c.input {
		out[k] = v
	}
	return out
}

// Visibilities returns a copy of the resolved visibility flags.
func (c *DerivationContext) Visibilities() map[string]bool {
	out := make(map[string]bool, len(c.visibilities))
	for k, v := range c.visibilities {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the recorded error messages.
func (c *DerivationContext) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// InstanceIDs reads the replication instance-id list stored under a
// container's resolved id. Non-list or absent values mean no instances.
func (c *DerivationContext) InstanceIDs(resolvedID string) []string {
	raw := c.GetValue(resolvedID)
	switch list := raw.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
