package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

// knownSubcommands lists every registered subcommand name, used to
// decide whether the first argument should be treated as one.
var knownSubcommands = map[string]bool{
	"compile": true,
	"run":     true,
	"repl":    true,
	"disasm":  true,
	"help":    true,
	"flags":   true,
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&compileCmd{}, "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")

	// spec.md §6: if the first argument is neither "compile" nor "run"
	// (nor any other registered subcommand), it is taken as the input
	// file and "compile" is assumed.
	if len(os.Args) > 1 && !knownSubcommands[os.Args[1]] {
		rewritten := make([]string, 0, len(os.Args)+1)
		rewritten = append(rewritten, os.Args[0], "compile")
		rewritten = append(rewritten, os.Args[1:]...)
		os.Args = rewritten
	}

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
