package nocode

func init() {
	Register(&Operator{
		ID:          "Add",
		Package:     "arithmetic",
		Label:       "add",
		Description: "Adds two numbers.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamNumber,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) + ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "Subtract",
		Package:     "arithmetic",
		Label:       "subtract",
		Description: "Subtracts the right number from the left number.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamNumber,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) - ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "Multiply",
		Package:     "arithmetic",
		Label:       "multiply",
		Description: "Multiplies two numbers.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamNumber,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) * ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "Divide",
		Package:     "arithmetic",
		Label:       "divide",
		Description: "Divides the left number by the right number. Division by zero yields zero.",
		Params:      []Param{{Name: "left", Type: ParamNumber}, {Name: "right", Type: ParamNumber}},
		Returns:     ParamNumber,
		eval: func(args []any) (any, error) {
			divisor := ToNumber(args[1])
			if divisor == 0 {
				return float64(0), nil
			}
			return ToNumber(args[0]) / divisor, nil
		},
	})
}
