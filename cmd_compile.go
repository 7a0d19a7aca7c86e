package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"embercask/bytecode"
	"embercask/driver"
)

// compileCmd implements the `compile` subcommand: lex, parse, compile,
// then either write a bytecode file or produce an executable stub,
// per spec.md §6.
type compileCmd struct {
	output string
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile Embercask source to bytecode or an executable" }
func (*compileCmd) Usage() string {
	return `compile <input> [-o <output>]:
  Lex, parse, and compile an Embercask source file. If <output> has no
  extension or ends in '.exe', an executable stub is produced;
  otherwise a bytecode file is written. Default output is "a.embc".
`
}

func (cmd *compileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.output, "o", "a.embc", "output path")
}

func (cmd *compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	inputPath := args[0]

	chunk, err := driver.CompileFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %s\n", err.Error())
		return subcommands.ExitFailure
	}

	if wantsExecutable(cmd.output) {
		goFile := strings.TrimSuffix(cmd.output, ".exe") + "_stub.go"
		if err := driver.GenerateStub(chunk, goFile, cmd.output); err != nil {
			fmt.Fprintf(os.Stderr, "💥 %s\n", err.Error())
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	out, err := os.Create(cmd.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to create output file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := bytecode.Encode(chunk, out); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to encode bytecode: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// wantsExecutable reports whether output names an executable target:
// no extension at all, or an explicit ".exe" suffix (spec.md §6).
func wantsExecutable(output string) bool {
	base := output
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if strings.HasSuffix(base, ".exe") {
		return true
	}
	return !strings.Contains(base, ".")
}
