package stdlib

import (
	"math"
	"math/cmplx"

	"vlsng/internal/value"
)

func wantNumber(args []value.TypedValue, i int) (value.Number, error) {
	return args[i].AsNumber()
}

func numberProc(name string, fn func(n value.Number) value.Number) *value.Procedure {
	return &value.Procedure{
		Name: name, Min: 1, Max: 1, Mappable: true,
		Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
			n, err := wantNumber(args, 0)
			if err != nil {
				return value.TypedValue{}, err
			}
			return value.FromNumber(fn(n)), nil
		},
	}
}

var procArg = numberProc("Arg", func(n value.Number) value.Number {
	return value.NumberFromFloat(n.Angle())
})

var procAbs = numberProc("abs", func(n value.Number) value.Number {
	return value.NumberFromFloat(n.Magnitude())
})

var procSin = numberProc("sin", func(n value.Number) value.Number {
	return value.NumberFromFloat(math.Sin(n.Real))
})

var procCos = numberProc("cos", func(n value.Number) value.Number {
	return value.NumberFromFloat(math.Cos(n.Real))
})

var procCeil = numberProc("ceil", func(n value.Number) value.Number {
	return value.Number{Real: math.Ceil(n.Real), Imag: math.Ceil(n.Imag)}
})

var procFloor = numberProc("floor", func(n value.Number) value.Number {
	return value.Number{Real: math.Floor(n.Real), Imag: math.Floor(n.Imag)}
})

var procTanh = numberProc("tanh", func(n value.Number) value.Number {
	return value.Number{Real: math.Tanh(n.Real), Imag: math.Tanh(n.Imag)}
})

var procAtan = numberProc("atan", func(n value.Number) value.Number {
	return value.Number{Real: math.Atan(n.Real), Imag: math.Atan(n.Imag)}
})

var procSign = numberProc("sign", func(n value.Number) value.Number {
	if n.Real >= 0 {
		return value.NumberFromFloat(1)
	}
	return value.NumberFromFloat(-1)
})

var procSqrt = numberProc("sqrt", func(n value.Number) value.Number {
	c := cmplx.Sqrt(complex(n.Real, n.Imag))
	return value.Number{Real: real(c), Imag: imag(c)}
})

var procLn = numberProc("ln", func(n value.Number) value.Number {
	return value.NumberFromFloat(math.Log(n.Real))
})

var procRe = numberProc("Re", func(n value.Number) value.Number {
	return value.NumberFromFloat(n.Real)
})

var procIm = numberProc("Im", func(n value.Number) value.Number {
	return value.NumberFromFloat(n.Imag)
})

var procConjugate = numberProc("conjugate", func(n value.Number) value.Number {
	return n.Conjugate()
})

// mod: fmod(a,b), mappable over a's sequence-ness.
var procMod = &value.Procedure{
	Name: "mod", Min: 2, Max: 2, Mappable: true,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		a, err := wantNumber(args, 0)
		if err != nil {
			return value.TypedValue{}, err
		}
		b, err := wantNumber(args, 1)
		if err != nil {
			return value.TypedValue{}, err
		}
		return value.FromNumber(value.NumberFromFloat(math.Mod(a.Real, b.Real))), nil
	},
}

// clamp: min(max(x,lo),hi) on the real part.
var procClamp = &value.Procedure{
	Name: "clamp", Min: 3, Max: 3, Mappable: true,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		x, err := wantNumber(args, 0)
		if err != nil {
			return value.TypedValue{}, err
		}
		lo, err := wantNumber(args, 1)
		if err != nil {
			return value.TypedValue{}, err
		}
		hi, err := wantNumber(args, 2)
		if err != nil {
			return value.TypedValue{}, err
		}
		v := math.Max(x.Real, lo.Real)
		v = math.Min(v, hi.Real)
		return value.FromNumber(value.NumberFromFloat(v)), nil
	},
}

// log: log_base(x), base defaults to 10.
var procLog = &value.Procedure{
	Name: "log", Min: 1, Max: 2, Mappable: true,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		x, err := wantNumber(args, 0)
		if err != nil {
			return value.TypedValue{}, err
		}
		base := 10.0
		if len(args) == 2 {
			b, err := wantNumber(args, 1)
			if err != nil {
				return value.TypedValue{}, err
			}
			base = b.Real
		}
		return value.FromNumber(value.NumberFromFloat(math.Log(x.Real) / math.Log(base))), nil
	},
}
