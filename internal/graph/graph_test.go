package graph

import (
	"testing"

	"vlsng/internal/node"
	"vlsng/internal/nodes"
	"vlsng/internal/value"
)

func allSamples(block []float64, want float64, t *testing.T) {
	t.Helper()
	for i, v := range block {
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestConstantSource(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(0, 1)
	p.AddNode("c", nodes.NewAdd([]float64{5}))
	if err := p.Connect([]string{"c"}, 0, []string{"output"}, 0, OneToOne); err != nil {
		t.Fatal(err)
	}

	out, err := p.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	allSamples(out, 5, t)
}

func TestUnitDelayExposesFeedback(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(1, 1)
	p.AddNode("d", nodes.NewDelay([]float64{1}))
	if err := p.Connect([]string{"input"}, 0, []string{"d"}, 0, OneToOne); err != nil {
		t.Fatal(err)
	}
	if err := p.Connect([]string{"d"}, 0, []string{"output"}, 0, OneToOne); err != nil {
		t.Fatal(err)
	}

	input := make([]float64, node.BlockSize)
	input[0] = 1
	out, err := p.Run(input)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 0 {
		t.Fatalf("first delayed sample = %v, want 0", out[0])
	}
	if out[1] != 1 {
		t.Fatalf("second delayed sample = %v, want 1", out[1])
	}
}

func TestGroupManyToOneSumsMembers(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(0, 1)
	p.AddGroup("bank", 3)
	for i := 0; i < 3; i++ {
		p.AddNode(GroupMemberName("bank", i), nodes.NewAdd([]float64{1}))
	}
	members, ok := p.GroupMembers("bank")
	if !ok {
		t.Fatal("expected group bank to be registered")
	}
	if err := p.Connect(members, 0, []string{"output"}, 0, ManyToOne); err != nil {
		t.Fatal(err)
	}

	out, err := p.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	allSamples(out, 3, t)
}

func TestSeriesChainsMembers(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(0, 1)
	p.AddGroup("chain", 3)
	for i := 0; i < 3; i++ {
		p.AddNode(GroupMemberName("chain", i), nodes.NewAdd([]float64{1}))
	}
	members, _ := p.GroupMembers("chain")
	if err := p.Connect(members, 0, nil, 0, Series); err != nil {
		t.Fatal(err)
	}
	if err := p.Connect([]string{members[len(members)-1]}, 0, []string{"output"}, 0, OneToOne); err != nil {
		t.Fatal(err)
	}

	// each stage adds 1, and members evaluate in declaration order within
	// the same tick, so the chain's fresh output is available immediately:
	// member0 = 0+1, member1 = 1+1, member2 = 2+1.
	out, err := p.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	allSamples(out, 3, t)
}

func TestCountNodesIncludesInputOutput(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(1, 1)
	p.AddNode("c", nodes.NewAdd([]float64{1}))
	if got := p.CountNodes(); got != 3 {
		t.Fatalf("CountNodes = %d, want 3 (input, output, c)", got)
	}
}

func TestResetClearsTableAndReinstallsIO(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(1, 1)
	p.AddNode("c", nodes.NewAdd([]float64{1}))
	p.Reset()
	if got := p.CountNodes(); got != 2 {
		t.Fatalf("CountNodes after Reset = %d, want 2 (input, output)", got)
	}
	if _, ok := p.Node("c"); ok {
		t.Fatalf("node c should not survive Reset")
	}
}

func TestRunSubgraphRequiresDefinition(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(0, 0)
	if _, err := p.RunSubgraph("missing", 10); err == nil {
		t.Fatalf("expected error for undefined sub-graph")
	}
}

func TestConnectRejectsOutOfRangePort(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(0, 1)
	p.AddNode("c", nodes.NewAdd([]float64{5}))
	if err := p.Connect([]string{"c"}, 3, []string{"output"}, 0, OneToOne); err == nil {
		t.Fatal("expected error for out-of-range output port")
	}
	if err := p.Connect([]string{"c"}, 0, []string{"output"}, 3, OneToOne); err == nil {
		t.Fatal("expected error for out-of-range input port")
	}
}

func TestConnectRejectsUnknownNode(t *testing.T) {
	p := NewProgram()
	p.ConfigureIO(0, 1)
	p.AddNode("c", nodes.NewAdd([]float64{5}))
	if err := p.Connect([]string{"typo"}, 0, []string{"output"}, 0, OneToOne); err == nil {
		t.Fatal("expected error for unknown source node")
	}
	if err := p.Connect([]string{"c"}, 0, []string{"typo"}, 0, OneToOne); err == nil {
		t.Fatal("expected error for unknown destination node")
	}
}

func TestUnknownDirectiveErrors(t *testing.T) {
	p := NewProgram()
	if err := p.InvokeDirective("nope", nil); err == nil {
		t.Fatalf("expected error for unknown directive")
	}
}

func TestLengthDirectiveSetsRunLength(t *testing.T) {
	p := NewProgram()
	if err := p.InvokeDirective("length", []value.TypedValue{value.FromFloat(48000)}); err != nil {
		t.Fatal(err)
	}
	if p.RunLength() != 48000 {
		t.Fatalf("RunLength = %d, want 48000", p.RunLength())
	}
}
