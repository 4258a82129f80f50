package nocode

// The replication operators compare the number of instances of a
// replicating container. The left operand is the container's stored
// instance-id list; ToNumber turns a list into its element count, so
// the operators also tolerate a plain number on either side.

func init() {
	Register(&Operator{
		ID:          "ReplicatingListLengthEquals",
		Package:     "replication",
		Label:       "instance count equals",
		Description: "Met when the container holds exactly the given number of instances.",
		Params:      []Param{{Name: "instances", Type: ParamList}, {Name: "count", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) == ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "ReplicatingListLengthGreaterThanOrEqual",
		Package:     "replication",
		Label:       "instance count at least",
		Description: "Met when the container holds at least the given number of instances.",
		Params:      []Param{{Name: "instances", Type: ParamList}, {Name: "count", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) >= ToNumber(args[1]), nil
		},
	})
	Register(&Operator{
		ID:          "ReplicatingListLengthLessThanOrEqual",
		Package:     "replication",
		Label:       "instance count at most",
		Description: "Met when the container holds at most the given number of instances.",
		Params:      []Param{{Name: "instances", Type: ParamList}, {Name: "count", Type: ParamNumber}},
		Returns:     ParamBoolean,
		eval: func(args []any) (any, error) {
			return ToNumber(args[0]) <= ToNumber(args[1]), nil
		},
	})
}
