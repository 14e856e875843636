package value

import "fmt"

// Kind tags the active member of a TypedValue.
type Kind uint8

const (
	KindNumber Kind = iota
	KindSequence
	KindText
	KindProcedure
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindSequence:
		return "sequence"
	case KindText:
		return "text"
	case KindProcedure:
		return "procedure"
	default:
		return "unknown"
	}
}

// TypedValue is the tagged union of Number, Sequence, Text, and Procedure.
type TypedValue struct {
	Kind Kind
	Num  Number
	Seq  Sequence
	Txt  Text
	Proc *Procedure
}

func FromNumber(n Number) TypedValue     { return TypedValue{Kind: KindNumber, Num: n} }
func FromFloat(f float64) TypedValue     { return FromNumber(NumberFromFloat(f)) }
func FromSequence(s Sequence) TypedValue { return TypedValue{Kind: KindSequence, Seq: s} }
func FromText(t Text) TypedValue         { return TypedValue{Kind: KindText, Txt: t} }
func FromProcedure(p *Procedure) TypedValue {
	return TypedValue{Kind: KindProcedure, Proc: p}
}

// String renders a TypedValue as text, used by `print` and text-coercion.
func (v TypedValue) String() string {
	switch v.Kind {
	case KindNumber:
		return v.Num.String()
	case KindSequence:
		return v.Seq.String()
	case KindText:
		return string(v.Txt)
	case KindProcedure:
		return "PROCEDURE"
	default:
		return ""
	}
}

// TypeError reports arithmetic attempted on an unsupported combination of
// TypedValue kinds.
type TypeError struct {
	Op     string
	Detail string
}

func (e *TypeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: attempted to perform arithmetic on non-numeric value", e.Op)
}

// LengthMismatch reports sequence arithmetic between unequal-length operands.
type LengthMismatch struct {
	A, B int
}

func (e LengthMismatch) Error() string {
	return fmt.Sprintf("attempted to perform arithmetic on sequences of inequal length (%d vs %d)", e.A, e.B)
}

type arithOp struct {
	name     string
	numbers  func(a, b Number) Number
}

var (
	opAdd = arithOp{"add", Number.Add}
	opSub = arithOp{"subtract", Number.Sub}
	opMul = arithOp{"multiply", Number.Mul}
	opDiv = arithOp{"divide", Number.Div}
	opPow = arithOp{"exponentiate", Number.Pow}
)

// binary implements the dispatch table from spec.md §4.4:
//   Number op Number       -> Number
//   Number op Sequence     -> Sequence (scalar broadcast)
//   Sequence op Number     -> Sequence (scalar broadcast)
//   Sequence op Sequence   -> Sequence (equal length required)
//   anything else          -> TypeError
func binary(op arithOp, a, b TypedValue) (TypedValue, error) {
	switch a.Kind {
	case KindNumber:
		switch b.Kind {
		case KindNumber:
			return FromNumber(op.numbers(a.Num, b.Num)), nil
		case KindSequence:
			out := make(Sequence, len(b.Seq))
			for i, elem := range b.Seq {
				out[i] = op.numbers(a.Num, elem)
			}
			return FromSequence(out), nil
		default:
			return TypedValue{}, &TypeError{Op: op.name}
		}
	case KindSequence:
		switch b.Kind {
		case KindNumber:
			out := make(Sequence, len(a.Seq))
			for i, elem := range a.Seq {
				out[i] = op.numbers(elem, b.Num)
			}
			return FromSequence(out), nil
		case KindSequence:
			if len(a.Seq) != len(b.Seq) {
				return TypedValue{}, LengthMismatch{A: len(a.Seq), B: len(b.Seq)}
			}
			out := make(Sequence, len(a.Seq))
			for i := range a.Seq {
				out[i] = op.numbers(a.Seq[i], b.Seq[i])
			}
			return FromSequence(out), nil
		default:
			return TypedValue{}, &TypeError{Op: op.name}
		}
	default:
		return TypedValue{}, &TypeError{Op: op.name}
	}
}

func (a TypedValue) Add(b TypedValue) (TypedValue, error) { return binary(opAdd, a, b) }
func (a TypedValue) Sub(b TypedValue) (TypedValue, error) { return binary(opSub, a, b) }
func (a TypedValue) Mul(b TypedValue) (TypedValue, error) { return binary(opMul, a, b) }
func (a TypedValue) Div(b TypedValue) (TypedValue, error) { return binary(opDiv, a, b) }
func (a TypedValue) Pow(b TypedValue) (TypedValue, error) { return binary(opPow, a, b) }

// Negate implements unary minus, distributing over sequences.
func (a TypedValue) Negate() (TypedValue, error) {
	switch a.Kind {
	case KindNumber:
		return FromNumber(a.Num.Negated()), nil
	case KindSequence:
		out := make(Sequence, len(a.Seq))
		for i, elem := range a.Seq {
			out[i] = elem.Negated()
		}
		return FromSequence(out), nil
	default:
		return TypedValue{}, &TypeError{Op: "negate"}
	}
}

// AsNumber returns the Number value, erroring if the kind mismatches.
func (a TypedValue) AsNumber() (Number, error) {
	if a.Kind != KindNumber {
		return Number{}, &TypeError{Op: "expect number", Detail: fmt.Sprintf("got %s", a.Kind)}
	}
	return a.Num, nil
}

// AsSequence returns the Sequence value, erroring if the kind mismatches.
func (a TypedValue) AsSequence() (Sequence, error) {
	if a.Kind != KindSequence {
		return nil, &TypeError{Op: "expect sequence", Detail: fmt.Sprintf("got %s", a.Kind)}
	}
	return a.Seq, nil
}

// AsText returns the Text value, erroring if the kind mismatches.
func (a TypedValue) AsText() (Text, error) {
	if a.Kind != KindText {
		return "", &TypeError{Op: "expect text", Detail: fmt.Sprintf("got %s", a.Kind)}
	}
	return a.Txt, nil
}

// AsProcedure returns the Procedure value, erroring if the kind mismatches.
func (a TypedValue) AsProcedure() (*Procedure, error) {
	if a.Kind != KindProcedure {
		return nil, &TypeError{Op: "expect procedure", Detail: fmt.Sprintf("got %s", a.Kind)}
	}
	return a.Proc, nil
}
