// Knoten CLI - loads a compiled program, executes it, and prints the
// execution report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/knotenlang/knoten/backend/soft"
	"github.com/knotenlang/knoten/config"
	"github.com/knotenlang/knoten/pkg/loader"
	"github.com/knotenlang/knoten/vm"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: knoten [flags] program.knc\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	programPath := flag.Arg(0)

	cfg, err := config.FindAndLoad(filepath.Dir(programPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	verbosity := 0
	if *verbose || cfg.Log.Verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	program, err := loader.LoadFile(programPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	display := soft.NewBackend(soft.WithMaxFrames(cfg.Display.MaxFrames))
	registry := vm.NewRegistry(
		vm.WithDisplayBackend(display),
		vm.WithGPUBackend(soft.NewGPU()),
	)
	defer registry.Close()

	engine := vm.NewEngine(
		vm.WithDispatcher(vm.NewNatives(registry)),
		vm.WithMaxDepth(cfg.Runtime.MaxDepth),
	)
	fmt.Println(engine.Execute(program))
}
