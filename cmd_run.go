package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"embercask/bytecode"
	"embercask/vm"
)

// runCmd implements the `run` subcommand: load a persisted bytecode
// file and execute it in a fresh VM (spec.md §6).
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a compiled .embc bytecode file" }
func (*runCmd) Usage() string {
	return `run <input.embc>:
  Load bytecode and execute it in a fresh VM.
`
}
func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (*runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	inputPath := args[0]

	file, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to open file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	chunk, err := bytecode.Decode(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to decode bytecode: %v\n", err)
		return subcommands.ExitFailure
	}

	machine := vm.New()
	if err := machine.Run(chunk); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
