// Package node defines the common capability set every graph node
// implements: a fixed number of named input/output ports, each carrying a
// block of BlockSize samples per tick, plus the implement/finish lifecycle.
package node

import "math"

// BlockSize is the fixed block length every port carries per tick. The spec
// recommends 64 or higher, fixed at build time; 64 keeps feedback latency
// (one block) low enough for the delay/filter node examples to be audible
// and testable without excessive buffering.
const BlockSize = 64

// SampleRate is the fixed audio sample rate, exposed to the DSL as the
// symbol `sf`.
const SampleRate = 48000.0

// Tau is 2*pi, exposed to the DSL as the symbol `tau`.
const Tau = 2 * math.Pi

// Block is one tick's worth of samples on a single port.
type Block [BlockSize]float64

// Node is the capability set every concrete processing node implements.
// Graph owns connection wiring and port-sum aggregation; a Node only reads
// its already-summed input blocks and writes its output blocks.
type Node interface {
	NumInputs() int
	NumOutputs() int

	// Input returns the mutable input block at index i, which Graph sums
	// incoming edges into before calling Implement.
	Input(i int) *Block
	// Output returns the block at index i that Implement wrote; it persists
	// between ticks, which is what makes one-tick feedback well-defined.
	Output(i int) *Block

	// Implement advances the node by one tick: read Input blocks, write
	// Output blocks.
	Implement()
	// Finish notifies the node of stream end (flush file sinks, etc).
	Finish()
}

// Base implements the port storage and accessor boilerplate; concrete node
// types embed Base and only need to implement Implement (and Finish, if
// they hold a resource to release).
type Base struct {
	inputs  []Block
	outputs []Block
}

// NewBase allocates a Base with the given input/output port counts.
func NewBase(numInputs, numOutputs int) Base {
	return Base{
		inputs:  make([]Block, numInputs),
		outputs: make([]Block, numOutputs),
	}
}

func (b *Base) NumInputs() int  { return len(b.inputs) }
func (b *Base) NumOutputs() int { return len(b.outputs) }

func (b *Base) Input(i int) *Block  { return &b.inputs[i] }
func (b *Base) Output(i int) *Block { return &b.outputs[i] }

// Finish is a no-op default; nodes with resources override it.
func (b *Base) Finish() {}

// ZeroInputs clears all input ports; Graph calls this before re-summing
// incoming edges for the next tick.
func (b *Base) ZeroInputs() {
	for i := range b.inputs {
		b.inputs[i] = Block{}
	}
}
