package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"embercask/bytecode"
	"embercask/driver"
)

// disasmCmd is a thin wrapper over bytecode.Disassemble: it
// compiles (or loads, for an already-compiled .embc file) a chunk and
// prints its instructions in human-readable form. Supplemental tooling,
// not one of spec.md §6's two named subcommands.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Disassemble source or bytecode to readable text" }
func (*disasmCmd) Usage() string {
	return `disasm <input>:
  Disassemble an Embercask source file or a compiled .embc file.
`
}
func (*disasmCmd) SetFlags(f *flag.FlagSet) {}

func (*disasmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	inputPath := args[0]

	chunk, err := loadChunk(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %s\n", err.Error())
		return subcommands.ExitFailure
	}

	text, err := bytecode.Disassemble(chunk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to disassemble bytecode: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(os.Stdout, text)
	return subcommands.ExitSuccess
}

// loadChunk decodes inputPath as a persisted bytecode file if it has
// the .embc extension, otherwise compiles it as source.
func loadChunk(inputPath string) (*bytecode.Chunk, error) {
	if len(inputPath) >= 5 && inputPath[len(inputPath)-5:] == ".embc" {
		file, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		return bytecode.Decode(file)
	}
	return driver.CompileFile(inputPath)
}
