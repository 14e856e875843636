package value

import (
	"fmt"
	"strings"
)

// Sequence is an ordered collection of Number with no intrinsic name.
type Sequence []Number

// At accepts signed indices with Python-style wrap-around: -1 is the last
// element. Out-of-range indices report ok=false.
func (s Sequence) At(n int) (Number, bool) {
	if n < 0 {
		n += len(s)
	}
	if n < 0 || n >= len(s) {
		return Number{}, false
	}
	return s[n], true
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = n.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Reversed returns a new Sequence with elements in reverse order.
func (s Sequence) Reversed() Sequence {
	out := make(Sequence, len(s))
	for i, n := range s {
		out[len(s)-1-i] = n
	}
	return out
}

// Concat returns a new Sequence that is the concatenation of s and o.
func (s Sequence) Concat(o Sequence) Sequence {
	out := make(Sequence, 0, len(s)+len(o))
	out = append(out, s...)
	out = append(out, o...)
	return out
}

// Repeat concatenates s with itself n times.
func (s Sequence) Repeat(n int) Sequence {
	out := make(Sequence, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return out
}

// IndexOutOfRange describes a Sequence bounds failure for the error taxonomy.
type IndexOutOfRange struct {
	Index, Length int
}

func (e IndexOutOfRange) Error() string {
	return fmt.Sprintf("sequence index out of range. Index is: %d, length is: %d", e.Index, e.Length)
}
