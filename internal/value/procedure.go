package value

import "fmt"

// Text is an opaque byte string; concatenation is the only operation the
// core cares about, rendering is plain Go string conversion.
type Text string

// ProcFunc is the implementation behind a Procedure: given argument values
// and an opaque program handle (the running *graph.Program, passed as
// interface{} to avoid an import cycle between value and graph), it returns
// a TypedValue or an error.
type ProcFunc func(args []TypedValue, program interface{}) (TypedValue, error)

// Procedure is a callable standard-library or user entry: min/max arity,
// a mappable flag (lift elementwise over a Sequence first argument), and
// the implementation itself.
type Procedure struct {
	Name      string
	Min, Max  int // Max == Unbounded means no upper limit
	Mappable  bool
	Fn        ProcFunc
}

// Unbounded marks a Procedure's Max arity as unlimited.
const Unbounded = -1

// Call invokes the procedure, applying the mappable broadcast rule: if
// Mappable is set and the first argument is a Sequence, the call is lifted
// elementwise and the result is a Sequence of the same length.
func (p Procedure) Call(args []TypedValue, program interface{}) (TypedValue, error) {
	if len(args) < p.Min || (p.Max != Unbounded && len(args) > p.Max) {
		return TypedValue{}, &ArityError{Name: p.Name, Got: len(args), Min: p.Min, Max: p.Max}
	}

	if p.Mappable && len(args) > 0 && args[0].Kind == KindSequence {
		seq := args[0].Seq
		out := make(Sequence, len(seq))
		params := make([]TypedValue, len(args))
		copy(params, args)
		for i, elem := range seq {
			params[0] = FromNumber(elem)
			result, err := p.Fn(params, program)
			if err != nil {
				return TypedValue{}, err
			}
			if result.Kind != KindNumber {
				return TypedValue{}, &TypeError{Op: p.Name, Detail: "mapped procedure must return a Number per element"}
			}
			out[i] = result.Num
		}
		return FromSequence(out), nil
	}

	return p.Fn(args, program)
}

// ArityError reports a procedure called with the wrong number of arguments.
type ArityError struct {
	Name     string
	Got      int
	Min, Max int
}

func (e *ArityError) Error() string {
	if e.Max == Unbounded {
		return fmt.Sprintf("%s: expected at least %d argument(s), got %d", e.Name, e.Min, e.Got)
	}
	if e.Min == e.Max {
		return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Name, e.Min, e.Got)
	}
	return fmt.Sprintf("%s: expected %d..%d argument(s), got %d", e.Name, e.Min, e.Max, e.Got)
}
