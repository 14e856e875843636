// Package stdlib implements vlsng's standard procedure library: the fixed
// set of callables invoked by name from the DSL and from sub-graph code,
// grounded on original_source/src/Graph.cc's Program::procedures table.
package stdlib

import "vlsng/internal/value"

// ProgramHandle is the subset of *graph.Program the standard library needs.
// Declared here rather than imported, so stdlib never imports graph; parser
// imports both and passes a *graph.Program into procedure calls as an
// opaque interface{}, satisfying this interface structurally.
type ProgramHandle interface {
	CountNodes() int
	SubgraphSource(name string) (string, bool)
	RunSubgraph(name string, n int) (value.Sequence, error)
	ImportLibrary(name string) error
}

// handle type-asserts the opaque program argument a Procedure receives back
// to the interface stdlib actually needs.
func handle(program interface{}) (ProgramHandle, bool) {
	h, ok := program.(ProgramHandle)
	return h, ok
}
