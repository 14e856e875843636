// Package replhost implements the interactive line-at-a-time host: read a
// line, parse it into the live *graph.Program, print errors. Grounded on
// the teacher's bufio.Scanner REPL loop shape, generalized from a bytecode
// VM's "compile and run a chunk" cycle to vlsng's "parse one statement into
// the running graph" cycle.
package replhost

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vlsng/internal/graph"
	"vlsng/internal/parser"
	"vlsng/internal/vlog"
)

// Start runs the REPL loop, reading lines from in and writing prompts and
// output to out, until "exit" or EOF.
func Start(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "vlsng | type 'exit' to quit, 'reset' to clear the graph, 'tick' to advance one block")
	scanner := bufio.NewScanner(in)

	program := graph.NewProgram()
	program.ConfigureIO(0, 1)

	for {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit":
			return
		case line == "reset":
			program.Reset()
			program.ConfigureIO(0, 1)
			continue
		case line == "tick" || strings.HasPrefix(line, "tick "):
			runTicks(program, line, out)
			continue
		}

		if err := parser.Parse(program, line+"\n"); err != nil {
			vlog.Errorf("%s", err)
			fmt.Fprintln(out, err)
		}
	}
}

func runTicks(program *graph.Program, line string, out io.Writer) {
	count := 1
	if fields := strings.Fields(line); len(fields) == 2 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			count = n
		}
	}
	for i := 0; i < count; i++ {
		block, err := program.Run(make([]float64, 0))
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		shown := min(4, len(block))
		fmt.Fprintf(out, "tick %d: first %d samples: %v\n", i, shown, block[:shown])
	}
}
