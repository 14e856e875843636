// Command vlsng runs signal-processing graphs written in the vlsng DSL.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"

	"vlsng/internal/graph"
	"vlsng/internal/monitor"
	"vlsng/internal/node"
	"vlsng/internal/parser"
	"vlsng/internal/replhost"
	"vlsng/internal/vlog"
)

var (
	// VERSION is the released version string, overridden at build time via
	// -ldflags.
	VERSION   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// commandAliases lets short forms stand in for the full subcommand name.
var commandAliases = map[string]string{
	"r": "run",
	"i": "repl",
	"d": "dump",
	"s": "serve",
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if full, ok := commandAliases[cmd]; ok {
		cmd = full
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("vlsng %s (built %s, commit %s)\n", VERSION, BuildDate, GitCommit)
	case "run":
		runCommand(os.Args[2:])
	case "repl":
		replhost.Start(os.Stdin, os.Stdout)
	case "dump":
		dumpCommand(os.Args[2:])
	case "serve":
		serveCommand(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "vlsng: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vlsng - a signal-processing graph language

Usage:
  vlsng run <file.vlsng> [ticks]   parse and run a program for N ticks (default 1)
  vlsng repl                       start an interactive session
  vlsng dump <file.vlsng>          parse a program and print its graph structure
  vlsng serve <file.vlsng> [addr]  run a program and stream ticks/logs over websocket

Aliases: r=run, i=repl, d=dump, s=serve`)
}

func loadProgram(path string) (*graph.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := graph.NewProgram()
	p.ConfigureIO(0, 1)
	if err := parser.Parse(p, string(data)); err != nil {
		return nil, err
	}
	return p, nil
}

func runCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "vlsng run: missing file")
		os.Exit(1)
	}
	p, err := loadProgram(args[0])
	if err != nil {
		vlog.Errorf("%s", err)
		os.Exit(1)
	}

	ticks := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			ticks = n
		}
	}
	if rl := p.RunLength(); rl > 0 {
		ticks = (rl + node.BlockSize - 1) / node.BlockSize
	}

	var total int
	for i := 0; i < ticks; i++ {
		out, err := p.Run(nil)
		if err != nil {
			vlog.Errorf("%s", err)
			os.Exit(1)
		}
		total += len(out)
	}
	fmt.Printf("ran %s samples across %s ticks\n", humanize.Comma(int64(total)), humanize.Comma(int64(ticks)))
}

func dumpCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "vlsng dump: missing file")
		os.Exit(1)
	}
	p, err := loadProgram(args[0])
	if err != nil {
		vlog.Errorf("%s", err)
		os.Exit(1)
	}
	fmt.Printf("nodes: %d\n", p.CountNodes())
	fmt.Printf("run length: %s\n", humanize.Comma(int64(p.RunLength())))
	pretty.Println(p)
}

func serveCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "vlsng serve: missing file")
		os.Exit(1)
	}
	p, err := loadProgram(args[0])
	if err != nil {
		vlog.Errorf("%s", err)
		os.Exit(1)
	}

	addr := ":8080"
	if len(args) > 1 {
		addr = args[1]
	}
	if !strings.HasPrefix(addr, ":") && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	srv := monitor.NewServer()
	go func() {
		for {
			out, err := p.Run(nil)
			if err != nil {
				vlog.Errorf("%s", err)
				return
			}
			srv.Broadcast(monitor.Event{Kind: "tick", Samples: out})
		}
	}()

	vlog.Emit(fmt.Sprintf("serving websocket feed on %s/ws", addr))
	if err := srv.ListenAndServe(addr); err != nil {
		vlog.Errorf("%s", err)
		os.Exit(1)
	}
}
