package domain

// ElementType discriminates the closed set of element variants.
type ElementType string

const (
	// Structural variants.
	TypeStep                 ElementType = "step"
	TypeGroup                ElementType = "group"
	TypeReplicatingContainer ElementType = "replicating"

	// Input variants.
	TypeTextInput     ElementType = "text"
	TypeTextareaInput ElementType = "textarea"
	TypeNumberInput   ElementType = "number"
	TypeDateInput     ElementType = "date"
	TypeCheckboxInput ElementType = "checkbox"
	TypeSelectInput   ElementType = "select"
	TypeTableInput    ElementType = "table"
)

// containerTypes are the variants allowed to own children.
var containerTypes = map[ElementType]bool{
	TypeStep:                 true,
	TypeGroup:                true,
	TypeReplicatingContainer: true,
}

// inputTypes are the variants that carry a citizen-supplied value.
var inputTypes = map[ElementType]bool{
	TypeTextInput:     true,
	TypeTextareaInput: true,
	TypeNumberInput:   true,
	TypeDateInput:     true,
	TypeCheckboxInput: true,
	TypeSelectInput:   true,
	TypeTableInput:    true,
}

// KnownType reports whether t is a member of the closed variant set.
func KnownType(t ElementType) bool {
	return containerTypes[t] || inputTypes[t]
}

// Element is one node of a form definition. It is a tagged union: the
// Type field selects the variant, and variant-specific attributes are
// simply unused for other variants. The parent exclusively owns its
// children; cross-references between arbitrary nodes are resolved by id
// lookup from the tree root, never by pointer.
type Element struct {
	ID   string      `json:"id"`
	Type ElementType `json:"type"`

	// Label is the human-readable caption used for rendering and
	// validation messages.
	Label string `json:"label,omitempty"`

	// Metadata allows for extensible key-value pairs.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Visibility decides whether the element (and its subtree) takes
	// part in validation and rendering. Absent means always visible.
	Visibility *Function `json:"visibility,omitempty"`

	// Patch lets the element rewrite its own attributes from function
	// output before they are read. The function must yield an object
	// whose keys name the attributes to replace.
	Patch *Function `json:"patch,omitempty"`

	// Input configuration (input variants only).
	Required       bool   `json:"required,omitempty"`
	Disabled       bool   `json:"disabled,omitempty"`
	Technical      bool   `json:"technical,omitempty"`
	DestinationKey string `json:"destination_key,omitempty"`

	// Validate encodes the INVALID condition: a met condition set or a
	// truthy script result means the value is rejected. This inverted
	// polarity is load-bearing for existing form definitions; see the
	// validation engine documentation.
	Validate *Function `json:"validate,omitempty"`

	// ComputeValue derives a value for this input when the citizen has
	// not supplied one. Input values always win over computed values.
	ComputeValue *Function `json:"compute_value,omitempty"`

	// Options restricts select inputs to a fixed choice list.
	Options []string `json:"options,omitempty"`

	// Headers names the columns of a table input.
	Headers []string `json:"headers,omitempty"`

	// Replication configuration (replicating containers only).
	MinimumRequiredSets int `json:"minimum_required_sets,omitempty"`
	MaximumSets         int `json:"maximum_sets,omitempty"`

	// HeadlineTemplate is the per-instance headline of a replicating
	// container. A '#' placeholder is substituted with the 1-based
	// instance index.
	HeadlineTemplate string `json:"headline_template,omitempty"`

	// NoDataText is rendered when a replicating container holds no
	// instances in data mode.
	NoDataText string `json:"no_data_text,omitempty"`

	// Children is the ordered subtree (container variants only).
	Children []*Element `json:"children,omitempty"`
}

// IsContainer reports whether the element may own children.
func (e *Element) IsContainer() bool { return containerTypes[e.Type] }

// IsInput reports whether the element carries a citizen-supplied value.
func (e *Element) IsInput() bool { return inputTypes[e.Type] }

// DisplayLabel returns the label, falling back to the id.
func (e *Element) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// Clone returns a shallow-attribute copy of the element sharing the
// child slice. Used by the patch mechanism to build overridden
// snapshots without mutating the shared tree.
func (e *Element) Clone() *Element {
	c := *e
	return &c
}
