// Package graph implements vlsng's block-synchronous node runtime: a
// Program owns a symbol table, a node table evaluated in insertion order
// each tick, group/connection bookkeeping, directive dispatch, and the
// sub-graph instantiation behind run_subgraph. Grounded directly on
// original_source/src/Graph.cc.
package graph

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"vlsng/internal/errors"
	"vlsng/internal/library"
	"vlsng/internal/node"
	"vlsng/internal/value"
	"vlsng/internal/vlog"
)

// ParseFunc is installed by internal/parser's init(), breaking the
// graph<->parser import cycle (parser needs to build into a *Program;
// Program.ImportLibrary and RunSubgraph need to parse source into one).
var ParseFunc func(p *Program, source string) error

// DirectiveFunc is a directive callback: raw argument values and a mutable
// pointer to the Program that invoked it.
type DirectiveFunc func(args []value.TypedValue, p *Program) error

// processDirectives holds process-scope directive registrations, shared by
// every Program instance, per spec.md §4.7/§5.
var processDirectives = map[string]DirectiveFunc{}

// AddProcessDirective installs a directive visible to every Program.
func AddProcessDirective(name string, fn DirectiveFunc) {
	processDirectives[name] = fn
}

type subgraphDef struct {
	InArity, OutArity int
	Source            string
}

// Program is one running instance of the graph interpreter: a symbol table,
// a node table, connection edges, and sub-graph/group bookkeeping. It is not
// internally synchronised, matching spec.md §5's single-threaded model.
type Program struct {
	parent *Program

	table map[string]node.Node
	order []string

	incoming map[string][]edge

	groupSizes map[string]int

	symbolTable map[string]value.TypedValue

	subgraphs map[string]subgraphDef

	directives map[string]DirectiveFunc

	loader *library.Loader

	inArity, outArity int

	runLength int

	id uuid.UUID
}

// NewProgram builds an empty Program with no configured I/O. Call
// ConfigureIO before running ticks.
func NewProgram() *Program {
	p := &Program{id: uuid.New()}
	p.reset()
	p.loader = library.NewLoader(".")
	return p
}

func (p *Program) reset() {
	p.table = make(map[string]node.Node)
	p.order = nil
	p.incoming = make(map[string][]edge)
	p.groupSizes = make(map[string]int)
	p.symbolTable = make(map[string]value.TypedValue)
	p.subgraphs = make(map[string]subgraphDef)
	p.directives = make(map[string]DirectiveFunc)

	p.symbolTable["sf"] = value.FromFloat(node.SampleRate)
	p.symbolTable["tau"] = value.FromFloat(node.Tau)

	if p.inArity > 0 || p.outArity > 0 {
		p.installIONodes()
	}
}

func (p *Program) installIONodes() {
	p.AddNode("input", newIOInput(p.inArity))
	p.AddNode("output", newIOOutput(p.outArity))
}

// ConfigureIO sets the host-facing I/O widths and reinstantiates the
// input/output nodes.
func (p *Program) ConfigureIO(inArity, outArity int) {
	p.inArity, p.outArity = inArity, outArity
	p.installIONodes()
}

// Reset drops all nodes, symbols, groups, and sub-graphs, then reinstantiates
// input/output per the current I/O configuration.
func (p *Program) Reset() {
	p.reset()
}

// AddNode registers a node under name, in insertion order. Re-adding an
// existing name replaces it in place without disturbing evaluation order.
func (p *Program) AddNode(name string, n node.Node) {
	if _, exists := p.table[name]; !exists {
		p.order = append(p.order, name)
	}
	p.table[name] = n
}

// Node looks up a node by name.
func (p *Program) Node(name string) (node.Node, bool) {
	n, ok := p.table[name]
	return n, ok
}

// AddGroup records a group's member count; member nodes themselves are
// registered separately via AddNode under their synthesized names.
func (p *Program) AddGroup(name string, size int) {
	p.groupSizes[name] = size
}

// GroupMembers returns the synthesized node names belonging to a group, in
// declaration order: __grp_<name>0 .. __grp_<name><size-1>.
func (p *Program) GroupMembers(name string) ([]string, bool) {
	size, ok := p.groupSizes[name]
	if !ok {
		return nil, false
	}
	members := make([]string, size)
	for i := 0; i < size; i++ {
		members[i] = GroupMemberName(name, i)
	}
	return members, true
}

// GroupMemberName synthesizes the i-th member's node name for a group.
func GroupMemberName(group string, i int) string {
	return fmt.Sprintf("__grp_%s%d", group, i)
}

// SetSymbol installs a value into the symbol table.
func (p *Program) SetSymbol(name string, v value.TypedValue) {
	p.symbolTable[name] = v
}

// Symbol looks up a value from the symbol table.
func (p *Program) Symbol(name string) (value.TypedValue, bool) {
	v, ok := p.symbolTable[name]
	return v, ok
}

// AddDirective installs a program-scope directive callback.
func (p *Program) AddDirective(name string, fn DirectiveFunc) {
	p.directives[name] = fn
}

// InvokeDirective dispatches to a program-scope directive, falling back to
// process scope; invoking an unknown directive is an error.
func (p *Program) InvokeDirective(name string, args []value.TypedValue) error {
	if fn, ok := p.directives[name]; ok {
		return fn(args, p)
	}
	if fn, ok := processDirectives[name]; ok {
		return fn(args, p)
	}
	return errors.Newf(errors.Semantic, "unknown directive %q", name)
}

func init() {
	AddProcessDirective("length", func(args []value.TypedValue, p *Program) error {
		if len(args) != 1 {
			return errors.New(errors.TypeArity, "length directive expects exactly one argument")
		}
		n, err := args[0].AsNumber()
		if err != nil {
			return err
		}
		p.runLength = int(n.Real)
		return nil
	})
}

// RunLength is the sample count installed by the `length` directive, or 0 if
// never set.
func (p *Program) RunLength() int { return p.runLength }

// DefineSubgraph stores a named sub-graph's source text and declared arity,
// for later instantiation by run_subgraph.
func (p *Program) DefineSubgraph(name string, inArity, outArity int, source string) {
	p.subgraphs[name] = subgraphDef{InArity: inArity, OutArity: outArity, Source: source}
}

// SubgraphSource implements stdlib.ProgramHandle: returns a sub-graph's
// stored source text by name.
func (p *Program) SubgraphSource(name string) (string, bool) {
	def, ok := p.subgraphs[name]
	if !ok {
		return "", false
	}
	return def.Source, true
}

// CountNodes implements stdlib.ProgramHandle: total nodes across this
// program and all ancestors, transitively.
func (p *Program) CountNodes() int {
	total := len(p.table)
	if p.parent != nil {
		total += p.parent.CountNodes()
	}
	return total
}

// ImportLibrary implements stdlib.ProgramHandle: resolves the named library
// via the search path, skips re-parsing an already-imported identical
// source (by content hash), and otherwise parses it additively into this
// program.
func (p *Program) ImportLibrary(name string) error {
	source, alreadyImported, err := p.loader.Resolve(name)
	if err != nil {
		return err
	}
	if alreadyImported {
		return nil
	}
	if ParseFunc == nil {
		return errors.New(errors.Semantic, "import_library: no parser installed")
	}
	return ParseFunc(p, source)
}

// RunSubgraph implements stdlib.ProgramHandle: instantiates the named
// sub-graph in a fresh inner Program, parented to this one, runs it for
// ceil(n/BlockSize) ticks, and returns the first n samples of output port 0.
func (p *Program) RunSubgraph(name string, n int) (value.Sequence, error) {
	def, ok := p.subgraphs[name]
	if !ok {
		return nil, errors.Newf(errors.Semantic, "sub-graph %q not found", name)
	}
	if ParseFunc == nil {
		return nil, errors.New(errors.Semantic, "run_subgraph: no parser installed")
	}

	inner := NewProgram()
	inner.parent = p
	inner.ConfigureIO(def.InArity, def.OutArity)
	if err := ParseFunc(inner, def.Source); err != nil {
		return nil, err
	}

	vlog.Diagnostic(fmt.Sprintf("run_subgraph %s instance %s", name, inner.id))

	ticks := int(math.Ceil(float64(n) / float64(node.BlockSize)))
	silence := make([]float64, def.InArity*node.BlockSize)
	out := make(value.Sequence, 0, ticks*node.BlockSize)
	for t := 0; t < ticks; t++ {
		blockOut, err := inner.Run(silence)
		if err != nil {
			return nil, err
		}
		if def.OutArity > 0 {
			for i := 0; i < node.BlockSize; i++ {
				out = append(out, value.NumberFromFloat(blockOut[i]))
			}
		}
	}
	inner.Finish()
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Run advances the program by one tick. input must be exactly
// inArity*BlockSize samples (port-major: port 0's block, then port 1's,
// ...); the returned slice is outArity*BlockSize samples in the same shape.
func (p *Program) Run(input []float64) ([]float64, error) {
	if len(input) != p.inArity*node.BlockSize {
		return nil, errors.Newf(errors.TypeArity, "input block size mismatch: got %d, want %d", len(input), p.inArity*node.BlockSize)
	}

	inputNode, ok := p.table["input"]
	if !ok {
		return nil, errors.New(errors.Semantic, "program has no input node; call ConfigureIO first")
	}
	for port := 0; port < p.inArity; port++ {
		out := inputNode.Output(port)
		copy(out[:], input[port*node.BlockSize:(port+1)*node.BlockSize])
	}

	for _, name := range p.order {
		if name == "output" {
			continue
		}
		n := p.table[name]
		p.sumIncoming(name, n)
		n.Implement()
	}

	outputNode, ok := p.table["output"]
	if !ok {
		return nil, errors.New(errors.Semantic, "program has no output node; call ConfigureIO first")
	}
	p.sumIncoming("output", outputNode)
	outputNode.Implement()

	result := make([]float64, p.outArity*node.BlockSize)
	for port := 0; port < p.outArity; port++ {
		in := outputNode.Input(port)
		copy(result[port*node.BlockSize:(port+1)*node.BlockSize], in[:])
	}
	return result, nil
}

// sumIncoming zeroes n's input ports, then accumulates every edge targeting
// name, reading each source's *current* Output block. A source that already
// ran earlier this tick contributes its fresh value; one that hasn't yet
// (or that only writes via its own internal state, like Delay) contributes
// whatever it last wrote — the mechanism behind one-tick feedback.
func (p *Program) sumIncoming(name string, n node.Node) {
	type zeroer interface{ ZeroInputs() }
	if z, ok := n.(zeroer); ok {
		z.ZeroInputs()
	} else {
		for i := 0; i < n.NumInputs(); i++ {
			*n.Input(i) = node.Block{}
		}
	}

	for _, e := range p.incoming[name] {
		src, ok := p.table[e.FromNode]
		if !ok {
			continue
		}
		srcOut := src.Output(e.FromPort)
		dstIn := n.Input(e.ToPort)
		for i := range dstIn {
			dstIn[i] += srcOut[i]
		}
	}
}

// Finish notifies every node of stream end, in evaluation order.
func (p *Program) Finish() {
	for _, name := range p.order {
		p.table[name].Finish()
	}
}
