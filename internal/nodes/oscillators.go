package nodes

import (
	"math"

	"vlsng/internal/node"
)

// Oscillator is a sine generator at a fixed frequency, with a free-running
// phase accumulator carried between ticks — the Go analogue of
// OscillatorObject's static block_index counter in original_source, turned
// into per-instance state so multiple oscillators don't share phase.
type Oscillator struct {
	node.Base
	freq  float64
	phase float64
}

func NewOscillator(args []float64) node.Node {
	o := &Oscillator{Base: node.NewBase(0, 1), freq: 110}
	if len(args) > 0 {
		o.freq = args[0]
	}
	return o
}

func (o *Oscillator) Implement() {
	out := o.Output(0)
	step := o.freq * node.Tau / node.SampleRate
	for i := range out {
		out[i] = math.Sin(o.phase)
		o.phase += step
		if o.phase > node.Tau {
			o.phase -= node.Tau
		}
	}
}

// SawtoothOscillator produces a band-unlimited ramp from -1 to 1.
type SawtoothOscillator struct {
	node.Base
	freq  float64
	phase float64
}

func NewSawtoothOscillator(args []float64) node.Node {
	o := &SawtoothOscillator{Base: node.NewBase(0, 1), freq: 110}
	if len(args) > 0 {
		o.freq = args[0]
	}
	return o
}

func (o *SawtoothOscillator) Implement() {
	out := o.Output(0)
	step := o.freq / node.SampleRate
	for i := range out {
		out[i] = 2*o.phase - 1
		o.phase += step
		if o.phase > 1 {
			o.phase -= 1
		}
	}
}

// SquareOscillator produces a +-1 square wave, grounded on Parser.cc's
// `square` object dispatch.
type SquareOscillator struct {
	node.Base
	freq  float64
	phase float64
}

func NewSquareOscillator(args []float64) node.Node {
	o := &SquareOscillator{Base: node.NewBase(0, 1), freq: 110}
	if len(args) > 0 {
		o.freq = args[0]
	}
	return o
}

func (o *SquareOscillator) Implement() {
	out := o.Output(0)
	step := o.freq / node.SampleRate
	for i := range out {
		if o.phase < 0.5 {
			out[i] = 1
		} else {
			out[i] = -1
		}
		o.phase += step
		if o.phase > 1 {
			o.phase -= 1
		}
	}
}

// Noise emits uniform white noise in [-1, 1], drawn from the shared
// process-wide PRNG (internal/prng), same source the `random` stdlib
// procedure uses.
type Noise struct{ node.Base }

func NewNoise([]float64) node.Node {
	return &Noise{Base: node.NewBase(0, 1)}
}

func (n *Noise) Implement() {
	out := n.Output(0)
	for i := range out {
		out[i] = randomBipolar()
	}
}

// Clock emits a single-sample pulse (1) at the start of every period and 0
// otherwise, at the given frequency in Hz.
type Clock struct {
	node.Base
	periodSamples int
	counter       int
}

func NewClock(args []float64) node.Node {
	freq := 1.0
	if len(args) > 0 {
		freq = args[0]
	}
	period := int(node.SampleRate / freq)
	if period < 1 {
		period = 1
	}
	return &Clock{Base: node.NewBase(0, 1), periodSamples: period}
}

func (c *Clock) Implement() {
	out := c.Output(0)
	for i := range out {
		if c.counter == 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
		c.counter++
		if c.counter >= c.periodSamples {
			c.counter = 0
		}
	}
}

// Timer emits 1 once every N samples, N being its constructor argument (a
// raw sample count rather than a frequency; SampleRate samples when absent
// or not positive) — distinguished from Clock per
// Parser.cc's separate `clock`/`timer` object dispatch.
type Timer struct {
	node.Base
	period  int
	counter int
}

func NewTimer(args []float64) node.Node {
	period := int(node.SampleRate)
	if len(args) > 0 && args[0] > 0 {
		period = int(args[0])
	}
	return &Timer{Base: node.NewBase(0, 1), period: period}
}

func (t *Timer) Implement() {
	out := t.Output(0)
	for i := range out {
		if t.counter == 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
		t.counter++
		if t.counter >= t.period {
			t.counter = 0
		}
	}
}
