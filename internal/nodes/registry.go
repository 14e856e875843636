package nodes

import (
	"fmt"

	"vlsng/internal/node"
	"vlsng/internal/value"
)

// Constructor builds a node from its constructor arguments, already
// evaluated to TypedValues by the parser's expression evaluator.
type Constructor func(args []value.TypedValue) (node.Node, error)

// floatArgs extracts the real part of each Number argument; used by every
// node type whose constructor takes plain numeric parameters.
func floatArgs(args []value.TypedValue) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, err := a.AsNumber()
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = n.Real
	}
	return out, nil
}

func numeric(fn func([]float64) node.Node) Constructor {
	return func(args []value.TypedValue) (node.Node, error) {
		floats, err := floatArgs(args)
		if err != nil {
			return nil, err
		}
		return fn(floats), nil
	}
}

// Registry maps an object type-name (the identifier before `~`) to its
// constructor. Grounded on original_source/src/Parser.cc's parse_declaration
// dispatch chain (osc/add/square/delay/mult/sub/div/noise/clock/timer/mod/
// abs/comp/filter/file) plus objects.h's Sawtooth/Pass/Bitcrush additions.
var Registry = map[string]Constructor{
	"osc":      numeric(NewOscillator),
	"saw":      numeric(NewSawtoothOscillator),
	"square":   numeric(NewSquareOscillator),
	"add":      numeric(NewAdd),
	"sub":      numeric(NewSub),
	"mult":     numeric(NewMult),
	"div":      numeric(NewDiv),
	"mod":      numeric(NewModulo),
	"abs":      numeric(NewAbsoluteValue),
	"comp":     numeric(NewComparator),
	"pass":     numeric(NewPass),
	"bitcrush": numeric(NewBitcrush),
	"delay":    numeric(NewDelay),
	"filter":   numeric(NewFilter),
	"noise":    numeric(NewNoise),
	"clock":    numeric(NewClock),
	"timer":    numeric(NewTimer),
	"file": func(args []value.TypedValue) (node.Node, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("file~ expects exactly one path argument")
		}
		path, err := args[0].AsText()
		if err != nil {
			return nil, err
		}
		return NewFileSink(string(path))
	},
}

// InlineConstructors is the subset of the registry reachable from a
// connection's inline operator splice (`-> * 0.5 ->`), per spec.md §4.3.
var InlineConstructors = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "mult",
	"/": "div",
}
