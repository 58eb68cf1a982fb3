package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/reusee/amc/cmds"
	"github.com/reusee/amc/ir"
	"github.com/reusee/amc/modes"
	"github.com/reusee/amc/runs"
	"github.com/reusee/amc/tapes"
	"github.com/reusee/amc/traces"
	"github.com/reusee/dscope"
)

var (
	machineFile  = cmds.Var[string]("-file", "machine document")
	tapeString   = cmds.Var[string]("-tape", "space separated initial tape")
	tapeFile     = cmds.Var[string]("-tape-file", "file of a space separated initial tape")
	charsString  = cmds.Var[string]("-chars", "initial tape, one cell per character")
	charsFile    = cmds.Var[string]("-chars-file", "file of an initial tape, one cell per character")
	headPosition = cmds.Var[int]("-head", "initial head position")
	resultFile   = cmds.Var[string]("-out", "write the result as JSON")
	checkOnly    = cmds.Switch("-check", "link only, print symbols and states")
	devMode      = cmds.Switch("-dev", "ignore user and system configuration files")
)

func init() {
	cmds.Alias("-file", "-m")
	cmds.Alias("-tape", "-s")
	cmds.Alias("-tape-file", "-f")
	cmds.Alias("-chars", "-c")
	cmds.Alias("-chars-file", "-i")
	cmds.Alias("-trace-print", "-p")
	cmds.Alias("-trace-action", "-a")
	cmds.Alias("-trace-state", "-t")
}

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *machineFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file <machine.cue> is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var mode any = modes.ForProduction()
	if *devMode {
		mode = modes.ForDevelopment()
	}
	scope := dscope.New(
		new(runs.Module),
		mode,
	)

	scope.Call(func(
		compile runs.Compile,
		run runs.Run,
		output traces.Output,
		options traces.Options,
	) {
		machine, err := compile(ctx, *machineFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Link failed: %v\n", err)
			os.Exit(1)
		}

		if *checkOnly {
			check(machine)
			return
		}

		tape, err := loadTape()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		i, runErr := run(ctx, machine, tape, *headPosition)
		traces.NewPrinter(output, options.Before, options.After).Result(i)

		if *resultFile != "" {
			if err := runs.NewResult(i).Save(*resultFile); err != nil {
				fmt.Fprintf(os.Stderr, "Save result: %v\n", err)
				os.Exit(1)
			}
		}
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Execution halted: %v\n", runErr)
			os.Exit(1)
		}
	})
}

func loadTape() ([]ir.Symbol, error) {
	switch {
	case *tapeFile != "":
		return tapes.ReadFile(tapes.Words, *tapeFile)
	case *tapeString != "":
		return tapes.FromString(*tapeString), nil
	case *charsFile != "":
		return tapes.ReadFile(tapes.Chars, *charsFile)
	case *charsString != "":
		return tapes.FromChars(*charsString), nil
	}
	// blank tape
	return nil, nil
}

func check(machine *ir.Machine) {
	var symbols []string
	for _, sym := range machine.Symbols {
		symbols = append(symbols, string(sym))
	}
	fmt.Printf("SYMBOLS : %s\n", strings.Join(symbols, " "))
	fmt.Printf("INIT : %s\n", machine.InitialState().Name())
	for _, state := range machine.States {
		if params := state.Params(); len(params) > 0 {
			fmt.Printf("%s(%s)\n", state.Name(), strings.Join(params, ", "))
		} else {
			fmt.Println(state.Name())
		}
		for sym, rule := range state.Rules() {
			fmt.Printf("  %s : %v\n", sym, rule)
		}
		if capture, rule := state.Default(); rule != nil {
			fmt.Printf("  %s : %v\n", cmp.Or(capture, ir.Wildcard), rule)
		}
	}
}
