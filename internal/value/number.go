// Package value implements vlsng's dynamically typed value model: a tagged
// union of Number, Sequence, Text, and Procedure, with arithmetic and
// broadcasting across sequences.
package value

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Number is a complex scalar: a pair of float64 components.
type Number struct {
	Real, Imag float64
}

// Zero is the additive identity.
var Zero = Number{}

// NumberFromFloat builds a purely-real Number.
func NumberFromFloat(r float64) Number {
	return Number{Real: r}
}

// IsComplex reports whether the imaginary component is non-zero.
func (n Number) IsComplex() bool {
	return n.Imag != 0
}

// Magnitude is the Euclidean norm of the complex value.
func (n Number) Magnitude() float64 {
	return math.Hypot(n.Real, n.Imag)
}

// Angle is the argument (phase) of the complex value.
func (n Number) Angle() float64 {
	return math.Atan2(n.Imag, n.Real)
}

// Conjugate negates the imaginary component.
func (n Number) Conjugate() Number {
	return Number{Real: n.Real, Imag: -n.Imag}
}

// Negated flips the sign of both components.
func (n Number) Negated() Number {
	return Number{Real: -n.Real, Imag: -n.Imag}
}

// EqualsReal reports whether n equals the real number r (imag must be zero).
func (n Number) EqualsReal(r float64) bool {
	return n.Imag == 0 && n.Real == r
}

func (n Number) complex128() complex128 {
	return complex(n.Real, n.Imag)
}

func fromComplex(c complex128) Number {
	return Number{Real: real(c), Imag: imag(c)}
}

// Add, Sub, Mul, Div, Pow implement the exact complex arithmetic rules from
// the spec: add/sub componentwise, mul by (ac-bd, ad+bc), div by
// multiplication with the conjugate, exponentiation via complex power.
func (n Number) Add(o Number) Number {
	return Number{Real: n.Real + o.Real, Imag: n.Imag + o.Imag}
}

func (n Number) Sub(o Number) Number {
	return Number{Real: n.Real - o.Real, Imag: n.Imag - o.Imag}
}

func (n Number) Mul(o Number) Number {
	return Number{
		Real: n.Real*o.Real - n.Imag*o.Imag,
		Imag: n.Imag*o.Real + n.Real*o.Imag,
	}
}

// Div follows the original's branch on the dividend n, not the divisor:
// a real dividend always takes the plain real-denominator path (even
// against a complex divisor, matching Number::divide_num's quirk), and
// only a complex dividend multiplies through by the divisor's conjugate.
func (n Number) Div(o Number) Number {
	if !n.IsComplex() {
		return Number{Real: n.Real / o.Real, Imag: n.Imag / o.Real}
	}
	conj := o.Conjugate()
	denom := o.Mul(conj)
	inter := n.Mul(conj)
	return Number{Real: inter.Real / denom.Real, Imag: inter.Imag / denom.Real}
}

func (n Number) Pow(o Number) Number {
	imag := n.Imag
	if imag == 0 {
		imag = 0 // normalizes -0 to 0, matching the original's `-0.f` guard
	}
	return fromComplex(cmplx.Pow(complex(n.Real, imag), o.complex128()))
}

// String renders the number following the spec's text rules: components with
// magnitude below 0.001 are suppressed, the empty rendering collapses to "0",
// non-finite values render as their raw float representation.
func (n Number) String() string {
	if math.IsInf(n.Real, 0) || math.IsNaN(n.Real) {
		return strconv.FormatFloat(n.Real, 'g', -1, 64)
	}

	var sb strings.Builder
	showReal := math.Abs(n.Real) >= 0.001
	showImag := math.Abs(n.Imag) >= 0.001

	if showReal {
		sb.WriteString(trimTrailing(n.Real))
		if showImag {
			sb.WriteString(" + ")
		}
	}
	if showImag {
		sb.WriteString(trimTrailing(n.Imag))
		sb.WriteString("i")
	}

	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// trimTrailing mirrors the original's "erase last 3 chars" truncation of a
// printf-style %f rendering, by formatting with a fixed 3-decimal precision.
func trimTrailing(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
