// Package main provides htgsdot, a CLI that renders a declarative graph
// config to Graphviz DOT without executing it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/htgs-go/htgs/config"
	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/ctl"
)

func main() {
	fs := flag.NewFlagSet("htgsdot", flag.ExitOnError)
	file := fs.String("file", "", "graph config JSON file path")
	showTypes := fs.Bool("types", false, "label edges with their payload type")
	fs.Parse(os.Args[1:])

	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: --file is required")
		os.Exit(1)
	}

	kinds := ctl.DefaultKinds()
	loader := config.NewLoader(kinds.Names())
	cfg, err := loader.LoadFromFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	g, err := ctl.Assemble(cfg, kinds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var flags contracts.DotGenFlag
	if *showTypes {
		flags |= contracts.DotGenFlagShowInOutTypes
	}
	fmt.Println(g.B.RenderDot(flags))
}
