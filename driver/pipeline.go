package driver

import (
	"fmt"
	"os"

	"embercask/bytecode"
	"embercask/compiler"
	"embercask/lexer"
	"embercask/parser"
)

// Compile lexes, parses, and compiles source (read from sourcePath,
// used only to anchor import resolution) into a bytecode.Chunk. Every
// stage's errors are joined into a single error so callers have one
// place to report a failure and choose an exit status, mirroring the
// teacher's cmd_emit_bytecode.go staged-error-reporting shape.
func Compile(sourcePath string, source string) (*bytecode.Chunk, error) {
	tokens, err := lexer.New(source).Scan()
	if err != nil {
		return nil, fmt.Errorf("lexing error: %w", err)
	}

	statements, parseErrs := parser.Make(tokens).Parse()
	if len(parseErrs) > 0 {
		msg := "parsing error:\n"
		for _, pErr := range parseErrs {
			msg += fmt.Sprintf("\t%v\n", pErr)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	importer := NewFileImporter(sourcePath)
	chunk, err := compiler.New(importer).CompileProgram(statements)
	if err != nil {
		return nil, fmt.Errorf("compilation error: %w", err)
	}
	return chunk, nil
}

// CompileFile reads sourcePath and runs it through Compile.
func CompileFile(sourcePath string) (*bytecode.Chunk, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Compile(sourcePath, string(data))
}
