package nocode

import "strings"

func init() {
	Register(&Operator{
		ID:          "Contains",
		Package:     "text",
		Label:       "contains",
		Description: "Met when the text contains the given fragment.",
		Params:      []Param{{Name: "text", Type: ParamText}, {Name: "fragment", Type: ParamText}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return strings.Contains(ToString(args[0]), ToString(args[1])), nil
		},
	})
	Register(&Operator{
		ID:          "StartsWith",
		Package:     "text",
		Label:       "starts with",
		Description: "Met when the text starts with the given fragment.",
		Params:      []Param{{Name: "text", Type: ParamText}, {Name: "fragment", Type: ParamText}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return strings.HasPrefix(ToString(args[0]), ToString(args[1])), nil
		},
	})
	Register(&Operator{
		ID:          "EndsWith",
		Package:     "text",
		Label:       "ends with",
		Description: "Met when the text ends with the given fragment.",
		Params:      []Param{{Name: "text", Type: ParamText}, {Name: "fragment", Type: ParamText}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return strings.HasSuffix(ToString(args[0]), ToString(args[1])), nil
		},
	})
	Register(&Operator{
		ID:          "IsEmpty",
		Package:     "text",
		Label:       "is empty",
		Description: "Met when the value has no content (empty text, empty list, nothing entered).",
		Params:      []Param{{Name: "value", Type: ParamAny}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return !ToBoolean(args[0]), nil
		},
	})
	Register(&Operator{
		ID:          "IsNotEmpty",
		Package:     "text",
		Label:       "is not empty",
		Description: "Met when the value has content.",
		Params:      []Param{{Name: "value", Type: ParamAny}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToBoolean(args[0]), nil
		},
	})
	Register(&Operator{
		ID:          "Concat",
		Package:     "text",
		Label:       "concatenate",
		Description: "Joins two text values.",
		Params:      []Param{{Name: "left", Type: ParamText}, {Name: "right", Type: ParamText}},
		Returns:     ParamText,
		eval: func(args []any) (any, error) {
			return ToString(args[0]) + ToString(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "TextLength",
		Package:     "text",
		Label:       "text length",
		Description: "Returns the number of characters in the text.",
		Params:      []Param{{Name: "text", Type: ParamText}},
		Returns:     ParamNumber,
		eval: func(args []any) (any, error) {
			return float64(len([]rune(ToString(args[0])))), nil
		},
	})
}
