package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"embercask/compiler"
	"embercask/lexer"
	"embercask/parser"
	"embercask/token"
	"embercask/vm"
)

// replCmd implements the supplemental `repl` subcommand: a line editor
// built on readline driving the same compile-and-run loop as `compile`
// plus `run`, sharing one VM and one Compiler across inputs so
// declarations made on one line are visible on the next (grounded on
// cmd_repl_compiled.go's bufio.Scanner loop and isInputReady heuristic,
// ported onto readline for history and line editing).
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Welcome to Embercask!")

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %s\n", err.Error())
		return subcommands.ExitFailure
	}
	defer rl.Close()

	astCompiler := compiler.New(nil)
	machine := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				buffer.Reset()
				continue
			}
			if errors.Is(err, io.EOF) {
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "💥 %s\n", err.Error())
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		tokens, lexErr := lexer.New(source).Scan()
		if lexErr != nil {
			fmt.Println(lexErr)
			buffer.Reset()
			continue
		}

		if !isInputReady(tokens) {
			continue
		}

		statements, parseErrs := parser.Make(tokens).Parse()
		if len(parseErrs) > 0 {
			if allParseErrorsAtEOF(parseErrs, tokens[len(tokens)-1]) {
				continue
			}
			fmt.Fprintf(os.Stdout, "Parse error:\n")
			for _, pErr := range parseErrs {
				fmt.Fprintf(os.Stdout, "\t%v\n", pErr)
			}
			buffer.Reset()
			continue
		}

		chunk, compileErr := astCompiler.CompileProgram(statements)
		if compileErr != nil {
			fmt.Fprintln(os.Stderr, compileErr.Error())
			buffer.Reset()
			continue
		}

		if runtimeErr := machine.Run(chunk); runtimeErr != nil {
			fmt.Fprintln(os.Stderr, runtimeErr.Error())
		}
		buffer.Reset()
	}
}

// isInputReady reports whether tokens form a complete statement: all
// braces balanced and the last non-EOF token isn't an operator or
// keyword that expects more input to follow.
func isInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}

	switch last.TokenType {
	case token.ASSIGN,
		token.ADD,
		token.SUB,
		token.MULT,
		token.DIV,
		token.MOD,
		token.BANG,
		token.EQUAL_EQUAL,
		token.NOT_EQUAL,
		token.LESS,
		token.LESS_EQUAL,
		token.LARGER,
		token.LARGER_EQUAL,
		token.COMMA,
		token.LPA,
		token.LCUR,
		token.IF,
		token.ELSE,
		token.WHILE,
		token.FOR,
		token.FUNC,
		token.VAR,
		token.LET,
		token.CONST,
		token.AND,
		token.OR:
		return false
	}
	return true
}

func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].TokenType != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}

// allParseErrorsAtEOF reports whether every parse error points at the
// EOF token's position, meaning the user simply hasn't finished typing.
func allParseErrorsAtEOF(parseErrs []error, eof token.Token) bool {
	for _, parseErr := range parseErrs {
		syntaxErr, ok := parseErr.(parser.SyntaxError)
		if !ok {
			return false
		}
		if syntaxErr.Line != eof.Line || syntaxErr.Column != eof.Column {
			return false
		}
	}
	return len(parseErrs) > 0
}
