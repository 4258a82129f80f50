package nocode

import "reflect"

// equalAfterCast compares left against right after coercing right to
// left's concrete type. Author-configured literals arrive as text and
// must follow the referenced element's value type.
func equalAfterCast(left, right any) bool {
	coerced := ToTypeOfReference(left, right)
	if left == nil {
		return coerced == nil || ToString(coerced) == ""
	}
	if reflect.DeepEqual(left, coerced) {
		return true
	}
	// Scalar fallback over the canonical textual form covers mixed
	// numeric widths (int vs float64) coming out of different decoders.
	return ToString(left) == ToString(coerced)
}

func init() {
	Register(&Operator{
		ID:          "Equals",
		Package:     "comparison",
		Label:       "equals",
		Description: "Met when both values are equal after casting the right side to the left side's type.",
		Params:      []Param{{Name: "left", Type: ParamAny}, {Name: "right", Type: ParamAny}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return equalAfterCast(args[0], args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "NotEquals",
		Package:     "comparison",
		Label:       "does not equal",
		Description: "Met when the values differ after casting the right side to the left side's type.",
		Params:      []Param{{Name: "left", Type: ParamAny}, {Name: "right", Type: ParamAny}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return !equalAfterCast(args[0], args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "GreaterThan",
		Package:     "comparison",
		Label:       "greater than",
		Description: "Met when the left number is greater than the right number.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) > ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "GreaterThanOrEqual",
		Package:     "comparison",
		Label:       "greater than or equal",
		Description: "Met when the left number is at least the right number.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) >= ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "LessThan",
		Package:     "comparison",
		Label:       "less than",
		Description: "Met when the left number is less than the right number.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) < ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "LessThanOrEqual",
		Package:     "comparison",
		Label:       "less than or equal",
		Description: "Met when the left number is at most the right number.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) <= ToNumber(args[1]), nil
		},
	})
}
