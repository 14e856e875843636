package stdlib

import (
	"strings"

	"vlsng/internal/errors"
	"vlsng/internal/value"
	"vlsng/internal/vlog"
)

// print joins the stringified arguments and emits them to the process-wide
// log sink.
var procPrint = &value.Procedure{
	Name: "print", Min: 1, Max: value.Unbounded, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		vlog.Emit(strings.Join(parts, ""))
		return value.FromNumber(value.Zero), nil
	},
}

// implementation_of returns a named sub-graph's stored source text.
var procImplementationOf = &value.Procedure{
	Name: "implementation_of", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, program interface{}) (value.TypedValue, error) {
		h, ok := handle(program)
		if !ok {
			return value.TypedValue{}, errors.New(errors.Semantic, "implementation_of: no program context")
		}
		name, err := args[0].AsText()
		if err != nil {
			return value.TypedValue{}, err
		}
		src, found := h.SubgraphSource(string(name))
		if !found {
			return value.TypedValue{}, errors.Newf(errors.Semantic, "sub-graph %q not found", string(name))
		}
		return value.FromText(value.Text(src)), nil
	},
}

// count_nodes reports the total nodes across this program and all ancestors.
var procCountNodes = &value.Procedure{
	Name: "count_nodes", Min: 0, Max: 0, Mappable: false,
	Fn: func(args []value.TypedValue, program interface{}) (value.TypedValue, error) {
		h, ok := handle(program)
		if !ok {
			return value.TypedValue{}, errors.New(errors.Semantic, "count_nodes: no program context")
		}
		return value.FromFloat(float64(h.CountNodes())), nil
	},
}

// import_library opens <lib>, <lib>.vlsng, relative or under the library
// search path, and parses it additively into the current program.
var procImportLibrary = &value.Procedure{
	Name: "import_library", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, program interface{}) (value.TypedValue, error) {
		h, ok := handle(program)
		if !ok {
			return value.TypedValue{}, errors.New(errors.Semantic, "import_library: no program context")
		}
		name, err := args[0].AsText()
		if err != nil {
			return value.TypedValue{}, err
		}
		if err := h.ImportLibrary(string(name)); err != nil {
			return value.TypedValue{}, err
		}
		return value.FromNumber(value.Zero), nil
	},
}

// run_subgraph instantiates the named sub-graph, runs it for
// ceil(N/BLOCKSIZE) ticks, and returns the first N output samples of port 0.
var procRunSubgraph = &value.Procedure{
	Name: "run_subgraph", Min: 2, Max: 2, Mappable: false,
	Fn: func(args []value.TypedValue, program interface{}) (value.TypedValue, error) {
		h, ok := handle(program)
		if !ok {
			return value.TypedValue{}, errors.New(errors.Semantic, "run_subgraph: no program context")
		}
		name, err := args[0].AsText()
		if err != nil {
			return value.TypedValue{}, err
		}
		count, err := args[1].AsNumber()
		if err != nil {
			return value.TypedValue{}, err
		}
		seq, err := h.RunSubgraph(string(name), int(count.Real))
		if err != nil {
			return value.TypedValue{}, err
		}
		return value.FromSequence(seq), nil
	},
}
