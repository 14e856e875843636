package nodes

import (
	"vlsng/internal/node"
	"vlsng/internal/prng"
)

func randomBipolar() float64 {
	return prng.Uniform(-1, 1)
}

// Delay implements spec.md §4.6's intrinsic one-tick feedback semantics as
// a sample-accurate ring buffer: delaying by N samples (default 1) so that
// a cyclic connection through a Delay node is well-defined regardless of
// node evaluation order.
type Delay struct {
	node.Base
	ring []float64
	pos  int
}

func NewDelay(args []float64) node.Node {
	n := 1
	if len(args) > 0 && args[0] > 0 {
		n = int(args[0])
	}
	return &Delay{Base: node.NewBase(1, 1), ring: make([]float64, n)}
}

func (d *Delay) Implement() {
	in, out := d.Input(0), d.Output(0)
	for i := range in {
		out[i] = d.ring[d.pos]
		d.ring[d.pos] = in[i]
		d.pos++
		if d.pos >= len(d.ring) {
			d.pos = 0
		}
	}
}

// Filter is a one-pole lowpass: y[n] = y[n-1] + bal*(x[n] - y[n-1]), with
// `bal` derived from the cutoff frequency argument and `last` the carried
// state — names kept from original_source/src/objects/~filter.h's
// `bal`/`last` fields.
type Filter struct {
	node.Base
	bal  float64
	last float64
}

func NewFilter(args []float64) node.Node {
	freq := 100.0
	if len(args) > 0 {
		freq = args[0]
	}
	f := &Filter{}
	f.Base = node.NewBase(1, 1)
	f.bal = cutoffToBal(freq)
	return f
}

func cutoffToBal(freq float64) float64 {
	rc := 1.0 / (node.Tau * freq)
	dt := 1.0 / node.SampleRate
	return dt / (rc + dt)
}

func (f *Filter) Implement() {
	in, out := f.Input(0), f.Output(0)
	for i := range in {
		f.last += f.bal * (in[i] - f.last)
		out[i] = f.last
	}
}
