package parser

import (
	"strings"
	"testing"

	"vlsng/internal/graph"
	"vlsng/internal/node"
)

func newProgram(t *testing.T, inArity, outArity int) *graph.Program {
	t.Helper()
	p := graph.NewProgram()
	p.ConfigureIO(inArity, outArity)
	return p
}

func TestConstantSourceProgram(t *testing.T) {
	p := newProgram(t, 0, 1)
	if err := Parse(p, "c: add~ 5\nc{0} -> output{0}\n"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := p.Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, v := range out {
		if v != 5 {
			t.Fatalf("sample %d = %v, want 5", i, v)
		}
	}
}

func TestUnitDelayProgram(t *testing.T) {
	p := newProgram(t, 1, 1)
	src := "d: delay~ 1\ninput{0} -> d{0}\nd{0} -> output{0}\n"
	if err := Parse(p, src); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	input := make([]float64, node.BlockSize)
	input[0] = 1
	out, err := p.Run(input)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out[0] != 0 || out[1] != 1 {
		t.Fatalf("delay output = %v, %v; want 0, 1", out[0], out[1])
	}
}

func TestInlineOperatorSplicing(t *testing.T) {
	p := newProgram(t, 1, 1)
	src := "input{0} -> * 2 -> + 1 -> output{0}\n"
	if err := Parse(p, src); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	input := make([]float64, node.BlockSize)
	for i := range input {
		input[i] = 3
	}
	out, err := p.Run(input)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, v := range out {
		if v != 7 {
			t.Fatalf("sample %d = %v, want 7", i, v)
		}
	}
}

func TestGroupManyToOneProgram(t *testing.T) {
	p := newProgram(t, 0, 1)
	src := "bank: osc~ 110 x 3\nbank{0} -> output{0}\n"
	if err := Parse(p, src); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := p.Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// three identical oscillators summed: each sample is 3x a single
	// oscillator's sample, so the result must stay within [-3, 3].
	for i, v := range out {
		if v < -3.0001 || v > 3.0001 {
			t.Fatalf("sample %d = %v out of expected [-3,3] range", i, v)
		}
	}
}

func TestSequenceBroadcastExpression(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "s: {1, 2, 3}\nr: s * 2 + 1\n"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r, ok := p.Symbol("r")
	if !ok {
		t.Fatalf("symbol r not set")
	}
	seq, err := r.AsSequence()
	if err != nil {
		t.Fatalf("r is not a sequence: %v", err)
	}
	want := []float64{3, 5, 7}
	for i, w := range want {
		if seq[i].Real != w {
			t.Fatalf("r[%d] = %v, want %v", i, seq[i].Real, w)
		}
	}
}

func TestDirectiveInvocation(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "& length 48000\n"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.RunLength() != 48000 {
		t.Fatalf("RunLength = %d, want 48000", p.RunLength())
	}
}

func TestUnknownObjectTypeErrors(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "obj: bogus~ 1\n"); err == nil {
		t.Fatalf("expected error for unknown object type")
	}
}

func TestUnknownIdentifierErrors(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "v: y + 1\n"); err == nil {
		t.Fatalf("expected error for unknown identifier")
	}
}

func TestConnectionReportsOutOfRangePortInsteadOfPanicking(t *testing.T) {
	p := newProgram(t, 0, 1)
	src := "a: add~ 5\na{3} -> output{0}\n"
	if err := Parse(p, src); err == nil {
		t.Fatalf("expected error for out-of-range output port, got none")
	}
}

func TestRangeLiteralExpandsInclusive(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "r: [0, 3]\n"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r, ok := p.Symbol("r")
	if !ok {
		t.Fatalf("symbol r not set")
	}
	seq, err := r.AsSequence()
	if err != nil {
		t.Fatalf("r is not a sequence: %v", err)
	}
	want := []float64{0, 1, 2, 3}
	if len(seq) != len(want) {
		t.Fatalf("len(seq) = %d, want %d", len(seq), len(want))
	}
	for i, w := range want {
		if seq[i].Real != w {
			t.Fatalf("seq[%d] = %v, want %v", i, seq[i].Real, w)
		}
	}
}

func TestRangeLiteralEmptyWhenHiLessThanLo(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "r: [5, 2]\n"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r, _ := p.Symbol("r")
	seq, err := r.AsSequence()
	if err != nil {
		t.Fatalf("r is not a sequence: %v", err)
	}
	if len(seq) != 0 {
		t.Fatalf("len(seq) = %d, want 0", len(seq))
	}
}

func TestSubgraphDefinitionRunsAndReportsSource(t *testing.T) {
	p := newProgram(t, 0, 1)
	src := "doubler: sub~ 1, 1 {\nd: mult~ 2\ninput{0} -> d{0}\nd{0} -> output{0}\n}\n" +
		"s: implementation_of(\"doubler\")\n" +
		"r: run_subgraph(\"doubler\", 4)\n"
	if err := Parse(p, src); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	s, ok := p.Symbol("s")
	if !ok {
		t.Fatalf("symbol s not set")
	}
	text, err := s.AsText()
	if err != nil {
		t.Fatalf("s is not text: %v", err)
	}
	if !strings.Contains(string(text), "mult~ 2") {
		t.Fatalf("implementation_of returned %q, want it to contain the stored body", text)
	}

	r, ok := p.Symbol("r")
	if !ok {
		t.Fatalf("symbol r not set")
	}
	seq, err := r.AsSequence()
	if err != nil {
		t.Fatalf("r is not a sequence: %v", err)
	}
	if len(seq) != 4 {
		t.Fatalf("len(seq) = %d, want 4", len(seq))
	}
}

func TestSubgraphNotFoundErrors(t *testing.T) {
	p := graph.NewProgram()
	if err := Parse(p, "r: run_subgraph(\"missing\", 4)\n"); err == nil {
		t.Fatalf("expected error for undefined sub-graph")
	}
}
