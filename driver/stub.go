// Package driver holds the small pieces of tooling the CLI subcommands
// share: the lex/parse/compile pipeline (pipeline.go), the
// filesystem-backed import resolver (importer.go), and the
// executable-stub generator (spec.md §6). It has no
// dependency on the subcommand wiring itself so it can be tested in
// isolation.
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"text/template"

	"embercask/bytecode"
	"embercask/value"
)

// stubTemplate embeds a chunk's code and constants as Go data and
// reconstructs it at startup before handing it to the vm package. Only
// the four persistable constant kinds (spec.md §4.4) are supported;
// anything else fails GenerateStub before a template is even rendered.
var stubTemplate = template.Must(template.New("stub").Parse(`// Code generated by embercask compile; DO NOT EDIT.
package main

import (
	"os"

	"embercask/bytecode"
	"embercask/value"
	"embercask/vm"
)

var stubCode = []byte{ {{.CodeBytes}} }

func stubConstants() []value.Value {
	return []value.Value{
{{range .Constants}}		{{.}},
{{end}}	}
}

func main() {
	chunk := &bytecode.Chunk{Code: stubCode, Constants: stubConstants()}
	machine := vm.New()
	if err := machine.Run(chunk); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
`))

type stubData struct {
	CodeBytes string
	Constants []string
}

// renderStubSource builds the generated Go source for chunk, failing if
// any constant isn't one of the four persistable kinds.
func renderStubSource(chunk *bytecode.Chunk) (string, error) {
	codeParts := make([]string, len(chunk.Code))
	for i, b := range chunk.Code {
		codeParts[i] = fmt.Sprintf("0x%02x", b)
	}

	constants := make([]string, len(chunk.Constants))
	for i, v := range chunk.Constants {
		literal, err := constantLiteral(v)
		if err != nil {
			return "", fmt.Errorf("constant %d: %w", i, err)
		}
		constants[i] = literal
	}

	var out strings.Builder
	data := stubData{CodeBytes: strings.Join(codeParts, ", "), Constants: constants}
	if err := stubTemplate.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

// constantLiteral renders v as a Go expression constructing the
// equivalent value.Value, using the same constructors the compiler
// itself calls (value.Null/Number/Boolean/String).
func constantLiteral(v value.Value) (string, error) {
	switch v.Kind {
	case value.KindNull:
		return "value.Null()", nil
	case value.KindNumber:
		return fmt.Sprintf("value.Number(%s)", strconv.FormatFloat(v.Number, 'g', -1, 64)), nil
	case value.KindBoolean:
		return fmt.Sprintf("value.Boolean(%t)", v.Boolean), nil
	case value.KindString:
		return fmt.Sprintf("value.String(%s)", strconv.Quote(v.Str)), nil
	default:
		return "", fmt.Errorf("cannot embed a %s constant in a stub", v.Kind)
	}
}

// GenerateStub writes a self-contained Go source file at goFilePath that
// embeds chunk's code and constants, then invokes `go build` to produce
// outputPath. This is best-effort and host-dependent (spec.md §6): it
// shells out to whatever `go` toolchain is on PATH.
func GenerateStub(chunk *bytecode.Chunk, goFilePath, outputPath string) error {
	source, err := renderStubSource(chunk)
	if err != nil {
		return fmt.Errorf("generating stub source: %w", err)
	}
	if err := os.WriteFile(goFilePath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("writing stub source: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", outputPath, goFilePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("building stub executable: %w", err)
	}
	return nil
}
