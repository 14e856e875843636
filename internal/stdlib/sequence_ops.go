package stdlib

import (
	"golang.org/x/exp/slices"

	"vlsng/internal/value"
)

var procReverse = &value.Procedure{
	Name: "reverse", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		out := slices.Clone(seq)
		slices.Reverse(out)
		return value.FromSequence(out), nil
	},
}

// concatenate joins two sequences or two texts.
var procConcatenate = &value.Procedure{
	Name: "concatenate", Min: 2, Max: 2, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		if args[0].Kind == value.KindText && args[1].Kind == value.KindText {
			a, _ := args[0].AsText()
			b, _ := args[1].AsText()
			return value.FromText(a + b), nil
		}
		a, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		b, err := args[1].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		return value.FromSequence(a.Concat(b)), nil
	},
}

// map applies a procedure over a sequence, passing (elem, index) to each call.
var procMap = &value.Procedure{
	Name: "map", Min: 2, Max: 2, Mappable: false,
	Fn: func(args []value.TypedValue, program interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		proc, err := args[1].AsProcedure()
		if err != nil {
			return value.TypedValue{}, err
		}
		out := make(value.Sequence, len(seq))
		for i, elem := range seq {
			result, err := proc.Call([]value.TypedValue{
				value.FromNumber(elem),
				value.FromFloat(float64(i)),
			}, program)
			if err != nil {
				return value.TypedValue{}, err
			}
			n, err := result.AsNumber()
			if err != nil {
				return value.TypedValue{}, err
			}
			out[i] = n
		}
		return value.FromSequence(out), nil
	},
}

var procLengthOf = &value.Procedure{
	Name: "length_of", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		return value.FromFloat(float64(len(seq))), nil
	},
}

var procRepeat = &value.Procedure{
	Name: "repeat", Min: 2, Max: 2, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		n, err := args[1].AsNumber()
		if err != nil {
			return value.TypedValue{}, err
		}
		return value.FromSequence(seq.Repeat(int(n.Real))), nil
	},
}

var procTypeOf = &value.Procedure{
	Name: "type_of", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		return value.FromText(value.Text(args[0].Kind.String())), nil
	},
}
