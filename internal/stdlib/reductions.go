package stdlib

import (
	"golang.org/x/exp/slices"

	"vlsng/internal/value"
)

var procSum = &value.Procedure{
	Name: "sum", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		total := value.Zero
		for _, n := range seq {
			total = total.Add(n)
		}
		return value.FromNumber(total), nil
	},
}

var procAverage = &value.Procedure{
	Name: "average", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, program interface{}) (value.TypedValue, error) {
		sum, err := procSum.Fn(args, program)
		if err != nil {
			return value.TypedValue{}, err
		}
		seq, _ := args[0].AsSequence()
		if len(seq) == 0 {
			return value.FromNumber(value.Zero), nil
		}
		n, _ := sum.AsNumber()
		return value.FromNumber(value.NumberFromFloat(n.Real / float64(len(seq)))), nil
	},
}

// greatest and smallest compare sequence elements by magnitude, using the
// same ascending sort so the two procedures differ only in which end of the
// sorted copy they take.
func extremum(seq value.Sequence, wantMax bool) value.Number {
	sorted := slices.Clone(seq)
	slices.SortFunc(sorted, func(a, b value.Number) int {
		switch {
		case a.Magnitude() < b.Magnitude():
			return -1
		case a.Magnitude() > b.Magnitude():
			return 1
		default:
			return 0
		}
	})
	if wantMax {
		return sorted[len(sorted)-1]
	}
	return sorted[0]
}

var procGreatest = &value.Procedure{
	Name: "greatest", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		if len(seq) == 0 {
			return value.TypedValue{}, value.IndexOutOfRange{Index: 0, Length: 0}
		}
		return value.FromNumber(extremum(seq, true)), nil
	},
}

var procSmallest = &value.Procedure{
	Name: "smallest", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		if len(seq) == 0 {
			return value.TypedValue{}, value.IndexOutOfRange{Index: 0, Length: 0}
		}
		return value.FromNumber(extremum(seq, false)), nil
	},
}
