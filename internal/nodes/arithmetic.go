// Package nodes implements the standard node catalogue: oscillators,
// arithmetic, delay, filter, noise, clock, and file sink. Grounded on
// original_source/src/objects.h and src/objects/~mult.h, ~filter.h.
package nodes

import (
	"math"

	"vlsng/internal/node"
)

// constOp is the shared shape behind add~/sub~/mul~/div~: one input port,
// one output port, a constant operand applied per sample. ~mult.h calls
// this operand `default_value`; we keep the name for recognisability.
type constOp struct {
	node.Base
	defaultValue float64
	apply        func(in, k float64) float64
}

func newConstOp(args []float64, defaultValue float64, apply func(in, k float64) float64) *constOp {
	k := defaultValue
	if len(args) > 0 {
		k = args[0]
	}
	return &constOp{Base: node.NewBase(1, 1), defaultValue: k, apply: apply}
}

func (c *constOp) Implement() {
	in := c.Input(0)
	out := c.Output(0)
	for i := range in {
		out[i] = c.apply(in[i], c.defaultValue)
	}
}

func NewAdd(args []float64) node.Node {
	return newConstOp(args, 0, func(in, k float64) float64 { return in + k })
}

func NewSub(args []float64) node.Node {
	return newConstOp(args, 0, func(in, k float64) float64 { return in - k })
}

func NewMult(args []float64) node.Node {
	return newConstOp(args, 1, func(in, k float64) float64 { return in * k })
}

func NewDiv(args []float64) node.Node {
	return newConstOp(args, 1, func(in, k float64) float64 { return in / k })
}

func NewModulo(args []float64) node.Node {
	return newConstOp(args, 1, func(in, k float64) float64 { return math.Mod(in, k) })
}

// AbsoluteValue is a 1-in-1-out node emitting the absolute value of its
// input, grounded on Parser.cc's `abs` object dispatch (distinct from the
// mappable stdlib procedure of the same name, which operates on Numbers).
type AbsoluteValue struct{ node.Base }

func NewAbsoluteValue([]float64) node.Node {
	return &AbsoluteValue{Base: node.NewBase(1, 1)}
}

func (a *AbsoluteValue) Implement() {
	in, out := a.Input(0), a.Output(0)
	for i := range in {
		out[i] = math.Abs(in[i])
	}
}

// Comparator outputs 1 when the input is >= threshold, else 0.
type Comparator struct {
	node.Base
	threshold float64
}

func NewComparator(args []float64) node.Node {
	c := &Comparator{Base: node.NewBase(1, 1)}
	if len(args) > 0 {
		c.threshold = args[0]
	}
	return c
}

func (c *Comparator) Implement() {
	in, out := c.Input(0), c.Output(0)
	for i := range in {
		if in[i] >= c.threshold {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

// Pass is the identity node: output equals input unchanged.
type Pass struct{ node.Base }

func NewPass([]float64) node.Node {
	return &Pass{Base: node.NewBase(1, 1)}
}

func (p *Pass) Implement() {
	*p.Output(0) = *p.Input(0)
}

// Bitcrush quantizes its input to the given bit depth (default 8).
type Bitcrush struct {
	node.Base
	levels float64
}

func NewBitcrush(args []float64) node.Node {
	bits := 8.0
	if len(args) > 0 {
		bits = args[0]
	}
	return &Bitcrush{Base: node.NewBase(1, 1), levels: math.Pow(2, bits)}
}

func (b *Bitcrush) Implement() {
	in, out := b.Input(0), b.Output(0)
	for i := range in {
		out[i] = math.Round(in[i]*b.levels) / b.levels
	}
}
