package value

import (
	"math"
	"testing"
)

func TestNumberArithmetic(t *testing.T) {
	a := NumberFromFloat(2)
	b := Number{Real: 1, Imag: 1}
	if got := a.Add(b); got != (Number{Real: 3, Imag: 1}) {
		t.Fatalf("Add = %v", got)
	}
	if got := a.Mul(b); got != (Number{Real: 2, Imag: 2}) {
		t.Fatalf("Mul = %v", got)
	}
}

func TestNumberDivComplexDividend(t *testing.T) {
	a := Number{Real: 4, Imag: 2}
	b := NumberFromFloat(2)
	got := a.Div(b)
	if got.Real != 2 || got.Imag != 1 {
		t.Fatalf("Div = %v, want (2, 1)", got)
	}
}

func TestNumberDivComplex(t *testing.T) {
	a := Number{Real: 1, Imag: 1}
	b := Number{Real: 1, Imag: -1}
	got := a.Div(b)
	if got.Real != 0 || got.Imag != 1 {
		t.Fatalf("Div = %v, want (0, 1)", got)
	}
}

// TestNumberDivRealDividendTakesFastPathEvenAgainstComplexDivisor pins the
// original's branch-on-dividend quirk: a real dividend divided by a complex
// divisor still uses the real-denominator path (dividing by the divisor's
// real component alone), not full complex division.
func TestNumberDivRealDividendTakesFastPathEvenAgainstComplexDivisor(t *testing.T) {
	a := NumberFromFloat(4)
	b := Number{Real: 2, Imag: 1}
	got := a.Div(b)
	if got.Real != 2 || got.Imag != 0 {
		t.Fatalf("Div = %v, want (2, 0)", got)
	}
}

func TestNumberMagnitudeAndAngle(t *testing.T) {
	n := Number{Real: 3, Imag: 4}
	if n.Magnitude() != 5 {
		t.Fatalf("Magnitude = %v, want 5", n.Magnitude())
	}
	if n.Angle() != math.Atan2(4, 3) {
		t.Fatalf("Angle = %v, want %v", n.Angle(), math.Atan2(4, 3))
	}
}

func TestNumberStringSuppressesTinyComponents(t *testing.T) {
	n := Number{Real: 0.0001, Imag: 2}
	if got := n.String(); got != "2.000i" {
		t.Fatalf("String() = %q, want 2.000i", got)
	}
}

func TestNumberStringZero(t *testing.T) {
	if got := Zero.String(); got != "0" {
		t.Fatalf("String() = %q, want 0", got)
	}
}

func TestSequenceAtNegativeWraps(t *testing.T) {
	s := Sequence{NumberFromFloat(1), NumberFromFloat(2), NumberFromFloat(3)}
	got, ok := s.At(-1)
	if !ok || got.Real != 3 {
		t.Fatalf("At(-1) = %v, %v; want 3, true", got, ok)
	}
}

func TestSequenceAtOutOfRange(t *testing.T) {
	s := Sequence{NumberFromFloat(1)}
	if _, ok := s.At(5); ok {
		t.Fatalf("At(5) should report out of range")
	}
}

func TestSequenceReversedAndRepeat(t *testing.T) {
	s := Sequence{NumberFromFloat(1), NumberFromFloat(2)}
	rev := s.Reversed()
	if rev[0].Real != 2 || rev[1].Real != 1 {
		t.Fatalf("Reversed = %v", rev)
	}
	rep := s.Repeat(2)
	if len(rep) != 4 {
		t.Fatalf("Repeat length = %d, want 4", len(rep))
	}
}

func TestTypedValueBinaryBroadcast(t *testing.T) {
	a := FromNumber(NumberFromFloat(2))
	b := FromSequence(Sequence{NumberFromFloat(1), NumberFromFloat(2)})
	got, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	seq, err := got.AsSequence()
	if err != nil {
		t.Fatalf("AsSequence: %v", err)
	}
	if seq[0].Real != 2 || seq[1].Real != 4 {
		t.Fatalf("seq = %v", seq)
	}
}

func TestTypedValueLengthMismatchErrors(t *testing.T) {
	a := FromSequence(Sequence{NumberFromFloat(1)})
	b := FromSequence(Sequence{NumberFromFloat(1), NumberFromFloat(2)})
	if _, err := a.Add(b); err == nil {
		t.Fatalf("expected a length mismatch error")
	}
}

func TestTypedValueTypeErrorOnTextArithmetic(t *testing.T) {
	a := FromText(Text("hi"))
	b := FromNumber(NumberFromFloat(1))
	if _, err := a.Add(b); err == nil {
		t.Fatalf("expected a type error adding text to a number")
	}
}

func TestTypedValueNegate(t *testing.T) {
	v := FromNumber(NumberFromFloat(3))
	got, err := v.Negate()
	if err != nil {
		t.Fatalf("Negate: %v", err)
	}
	n, _ := got.AsNumber()
	if n.Real != -3 {
		t.Fatalf("Negate = %v, want -3", n.Real)
	}
}

func TestProcedureCallEnforcesArity(t *testing.T) {
	p := &Procedure{Name: "f", Min: 1, Max: 1, Fn: func(args []TypedValue, _ interface{}) (TypedValue, error) {
		return args[0], nil
	}}
	if _, err := p.Call(nil, nil); err == nil {
		t.Fatalf("expected an arity error")
	}
}

func TestProcedureCallMappableBroadcastsOverSequence(t *testing.T) {
	p := &Procedure{Name: "double", Min: 1, Max: 1, Mappable: true, Fn: func(args []TypedValue, _ interface{}) (TypedValue, error) {
		n, _ := args[0].AsNumber()
		return FromNumber(n.Mul(NumberFromFloat(2))), nil
	}}
	seq := FromSequence(Sequence{NumberFromFloat(1), NumberFromFloat(2), NumberFromFloat(3)})
	got, err := p.Call([]TypedValue{seq}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	out, err := got.AsSequence()
	if err != nil {
		t.Fatalf("AsSequence: %v", err)
	}
	want := []float64{2, 4, 6}
	for i, w := range want {
		if out[i].Real != w {
			t.Fatalf("out[%d] = %v, want %v", i, out[i].Real, w)
		}
	}
}

func TestAsNumberTypeMismatch(t *testing.T) {
	v := FromText(Text("x"))
	if _, err := v.AsNumber(); err == nil {
		t.Fatalf("expected a type error")
	}
}
