package nocode

func init() {
	Register(&Operator{
		ID:          "IsTrue",
		Package:     "boolean",
		Label:       "is true",
		Description: "Met when the value is truthy.",
		Params:      []Param{{Name: "value", Type: ParamAny}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToBoolean(args[0]), nil
		},
	})
	Register(&Operator{
		ID:          "IsFalse",
		Package:     "boolean",
		Label:       "is false",
		Description: "Met when the value is falsy (empty, zero, unchecked).",
		Params:      []Param{{Name: "value", Type: ParamAny}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return !ToBoolean(args[0]), nil
		},
	})
	Register(&Operator{
		ID:          "And",
		Package:     "boolean",
		Label:       "and",
		Description: "Met when both values are truthy.",
		Params:      []Param{{Name: "left", Type: ParamBoolean}, {Name: "right", Type: ParamBoolean}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToBoolean(args[0]) && ToBoolean(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "Or",
		Package:     "boolean",
		Label:       "or",
		Description: "Met when at least one value is truthy.",
		Params:      []Param{{Name: "left", Type: ParamBoolean}, {Name: "right", Type: ParamBoolean}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToBoolean(args[0]) || ToBoolean(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "Not",
		Package:     "boolean",
		Label:       "not",
		Description: "Inverts a boolean value.",
		Params:      []Param{{Name: "value", Type: ParamBoolean}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return !ToBoolean(args[0]), nil
		},
	})
}
