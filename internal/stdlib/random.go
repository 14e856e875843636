package stdlib

import (
	"vlsng/internal/prng"
	"vlsng/internal/value"
)

// random: U(0,1), U(0,a), or U(a,b), drawn from the process-wide PRNG.
var procRandom = &value.Procedure{
	Name: "random", Min: 0, Max: 2, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		switch len(args) {
		case 0:
			return value.FromFloat(prng.Float64()), nil
		case 1:
			a, err := args[0].AsNumber()
			if err != nil {
				return value.TypedValue{}, err
			}
			return value.FromFloat(prng.Uniform(0, a.Real)), nil
		default:
			a, err := args[0].AsNumber()
			if err != nil {
				return value.TypedValue{}, err
			}
			b, err := args[1].AsNumber()
			if err != nil {
				return value.TypedValue{}, err
			}
			return value.FromFloat(prng.Uniform(a.Real, b.Real)), nil
		}
	},
}
