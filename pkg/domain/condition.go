package domain

// ConditionMode selects the combination semantics of a ConditionSet.
type ConditionMode string

const (
	// ModeAll fails fast on the first unmet member.
	ModeAll ConditionMode = "all"
	// ModeAny succeeds fast on the first met member.
	ModeAny ConditionMode = "any"
)

// DefaultUnmetMessage is reported when a set is unmet and the author
// configured no message of their own.
const DefaultUnmetMessage = "condition not met"

// ConditionSet is a tree of conditions and nested sets combined with
// All/Any semantics. It carries the message reported when the set is
// unmet.
type ConditionSet struct {
	Mode         ConditionMode   `json:"mode"`
	Conditions   []*Condition    `json:"conditions,omitempty"`
	Sets         []*ConditionSet `json:"sets,omitempty"`
	UnmetMessage string          `json:"unmet_message,omitempty"`
}

// Message returns the configured unmet-message or the default.
func (s *ConditionSet) Message() string {
	if s.UnmetMessage != "" {
		return s.UnmetMessage
	}
	return DefaultUnmetMessage
}

// Condition is a single comparison between the value of a referenced
// element and either another element's value or a literal. Unary
// operators ignore the right operand entirely.
type Condition struct {
	// Operator names a registered no-code operator.
	Operator string `json:"operator"`

	// Reference is the local id of the element supplying the left
	// operand.
	Reference string `json:"reference"`

	// Target optionally names the element supplying the right operand.
	Target string `json:"target,omitempty"`

	// Value is the literal right operand used when Target is empty.
	Value any `json:"value,omitempty"`
}
