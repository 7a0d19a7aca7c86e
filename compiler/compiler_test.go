package compiler

import (
	"testing"

	"embercask/ast"
	"embercask/bytecode"
	"embercask/token"
)

func lit(v any) ast.Literal { return ast.Literal{Value: v} }

func TestCompileProgram_LiteralThenEOF(t *testing.T) {
	statements := []ast.Stmt{
		ast.ExpressionStmt{Expression: lit(int64(5))},
	}

	chunk, err := New(nil).CompileProgram(statements)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}

	if len(chunk.Constants) != 1 {
		t.Fatalf("expected 1 constant, got %d", len(chunk.Constants))
	}

	lastOp := bytecode.Opcode(chunk.Code[len(chunk.Code)-1])
	if lastOp != bytecode.OP_EOF {
		t.Fatalf("expected chunk to end with OP_EOF, got %v", lastOp)
	}
}

func TestCompileProgram_VarStmtStoresAndResolves(t *testing.T) {
	name := token.CreateLiteralToken(token.IDENTIFIER, nil, "x", 0, 0)
	statements := []ast.Stmt{
		ast.VarStmt{Name: name, Initializer: lit(int64(1))},
		ast.ExpressionStmt{Expression: ast.Assign{Name: name, Value: lit(int64(2))}},
	}

	chunk, err := New(nil).CompileProgram(statements)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}

	storeCount := 0
	for _, b := range chunk.Code {
		if bytecode.Opcode(b) == bytecode.OP_STORE_VAR {
			storeCount++
		}
	}
	if storeCount != 2 {
		t.Fatalf("expected 2 OP_STORE_VAR instructions, got %d", storeCount)
	}
}

func TestCompileProgram_UndeclaredVariableAutoInserts(t *testing.T) {
	name := token.CreateLiteralToken(token.IDENTIFIER, nil, "y", 0, 0)
	statements := []ast.Stmt{
		ast.ExpressionStmt{Expression: ast.Variable{Name: name}},
	}

	if _, err := New(nil).CompileProgram(statements); err != nil {
		t.Fatalf("expected a first reference to an undeclared name to auto-insert, got error: %v", err)
	}
}

type stubImporter struct {
	sources map[string]string
}

func (s stubImporter) ReadSource(path string) (string, error) {
	src, ok := s.sources[path]
	if !ok {
		return "", errNotFound{path}
	}
	return src, nil
}

type errNotFound struct{ path string }

func (e errNotFound) Error() string { return "no such import: " + e.path }

func TestCompileProgram_ImportSplicesIntoSharedChunk(t *testing.T) {
	importer := stubImporter{sources: map[string]string{
		"lib.ec": `var imported = 1;`,
	}}

	pathTok := token.CreateLiteralToken(token.STRING, "lib.ec", "lib.ec", 0, 0)
	statements := []ast.Stmt{
		ast.ImportStmt{Path: pathTok},
	}

	chunk, err := New(importer).CompileProgram(statements)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}

	found := false
	for _, b := range chunk.Code {
		if bytecode.Opcode(b) == bytecode.OP_STORE_VAR {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the imported var declaration to compile into the shared chunk")
	}
}

func TestCompileProgram_ImportWithoutImporterIsSemanticError(t *testing.T) {
	pathTok := token.CreateLiteralToken(token.STRING, "lib.ec", "lib.ec", 0, 0)
	statements := []ast.Stmt{
		ast.ImportStmt{Path: pathTok},
	}

	if _, err := New(nil).CompileProgram(statements); err == nil {
		t.Fatal("expected an error importing without a configured Importer")
	}
}

func TestCompileProgram_SwitchIsNotImplemented(t *testing.T) {
	statements := []ast.Stmt{
		ast.SwitchStmt{Value: lit(int64(1))},
	}

	if _, err := New(nil).CompileProgram(statements); err == nil {
		t.Fatal("expected switch codegen to fail")
	}
}
