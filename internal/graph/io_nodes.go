package graph

import "vlsng/internal/node"

// ioInput exposes the host-provided input block to the rest of the graph.
// Its output ports are written directly by Program.Run before the tick loop
// runs; Implement is a no-op since there is nothing to compute.
type ioInput struct{ node.Base }

func newIOInput(arity int) *ioInput {
	return &ioInput{Base: node.NewBase(0, arity)}
}

func (n *ioInput) Implement() {}

// ioOutput captures the final output block each tick; Program.Run reads it
// back out and the graph clears it for the next tick by virtue of
// ZeroInputs() being called again before the next tick's connections sum in.
type ioOutput struct{ node.Base }

func newIOOutput(arity int) *ioOutput {
	return &ioOutput{Base: node.NewBase(arity, 0)}
}

func (n *ioOutput) Implement() {}
