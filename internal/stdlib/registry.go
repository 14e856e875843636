package stdlib

import "vlsng/internal/value"

// All is the fixed name-to-procedure mapping making up the standard library,
// grounded on original_source/src/Graph.cc's Program::procedures table.
var All = map[string]*value.Procedure{
	"random":             procRandom,
	"Arg":                procArg,
	"abs":                procAbs,
	"mod":                procMod,
	"sin":                procSin,
	"cos":                procCos,
	"ceil":               procCeil,
	"floor":              procFloor,
	"tanh":               procTanh,
	"atan":               procAtan,
	"sign":               procSign,
	"clamp":              procClamp,
	"sqrt":               procSqrt,
	"ln":                 procLn,
	"log":                procLog,
	"Re":                 procRe,
	"Im":                 procIm,
	"conjugate":          procConjugate,
	"reverse":            procReverse,
	"concatenate":        procConcatenate,
	"map":                procMap,
	"sum":                procSum,
	"average":            procAverage,
	"greatest":           procGreatest,
	"smallest":           procSmallest,
	"print":              procPrint,
	"length_of":          procLengthOf,
	"type_of":            procTypeOf,
	"read_file":          procReadFile,
	"write_file":         procWriteFile,
	"implementation_of":  procImplementationOf,
	"repeat":             procRepeat,
	"count_nodes":        procCountNodes,
	"import_library":     procImportLibrary,
	"run_subgraph":       procRunSubgraph,
	"DFT":                procDFT,
	"FFT":                procFFT,
}

// Lookup returns the named procedure and whether it exists.
func Lookup(name string) (*value.Procedure, bool) {
	p, ok := All[name]
	return p, ok
}
