// Package compiler lowers an AST to a bytecode.Chunk in a single pass:
// one shared chunk and symbol table, recursive descent over the AST
// driven by the visitor dispatch ast.Stmt/ast.Expression already
// provide, and explicit jump back-patching for control flow.
package compiler

import (
	"fmt"

	"embercask/ast"
	"embercask/bytecode"
	"embercask/lexer"
	"embercask/parser"
	"embercask/token"
	"embercask/value"
)

const printBuiltin = "print"

// Compiler is a visitor that compiles AST nodes directly to bytecode,
// implementing both ast.ExpressionVisitor and ast.StmtVisitor.
type Compiler struct {
	chunk    *bytecode.Chunk
	symbols  *Symbols
	importer Importer
}

// New returns a Compiler with a fresh chunk and symbol table. importer
// may be nil if the program being compiled contains no import statements.
func New(importer Importer) *Compiler {
	return &Compiler{
		chunk:    bytecode.New(),
		symbols:  NewSymbols(),
		importer: importer,
	}
}

// CompileProgram compiles a full top-level program: every statement is
// visited in order, then a terminal EOF opcode is appended so the VM's
// dispatch loop has an unambiguous stop instruction. Compile-time
// failures (SemanticError, DeveloperError) surface as the returned
// error; the recover here mirrors the teacher's per-compile panic
// boundary, since emit helpers below panic on invariant violations
// rather than threading an error return through every visit method.
func (c *Compiler) CompileProgram(statements []ast.Stmt) (chunk *bytecode.Chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case SemanticError:
				err = v
			case DeveloperError:
				err = v
			default:
				panic(r)
			}
		}
	}()

	// Each call starts a fresh chunk so a Compiler reused across several
	// CompileProgram calls (the repl subcommand, one call per input
	// line) never re-emits code already handed to the VM; the symbol
	// table is the only state carried forward, so names declared on an
	// earlier call keep the same global slot on later ones.
	c.chunk = bytecode.New()
	c.compileStatements(statements)
	c.emit(bytecode.OP_EOF)
	return c.chunk, nil
}

func (c *Compiler) compileStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		stmt.Accept(c)
	}
}

// emit assembles opcode+operands and appends the instruction, returning
// the offset of the opcode byte (used by callers that need to patch a
// placeholder jump later).
func (c *Compiler) emit(op bytecode.Opcode, operands ...int) int {
	offset, err := c.chunk.Emit(op, operands...)
	if err != nil {
		panic(DeveloperError{Message: err.Error()})
	}
	return offset
}

// emitPlaceholderJump emits op with a 0xFFFF placeholder operand and
// returns the offset of the opcode byte, for later patchJump.
func (c *Compiler) emitPlaceholderJump(op bytecode.Opcode) int {
	return c.emit(op, 0xFFFF)
}

// patchJump overwrites a previously emitted placeholder jump's 16-bit
// operand with the distance from the byte after the operand to the
// current end of code, per spec.md's big-endian back-patch formula.
func (c *Compiler) patchJump(jumpOffset int) {
	target := len(c.chunk.Code)
	operandStart := jumpOffset + 1
	distance := target - (operandStart + 2)
	c.chunk.Code[operandStart] = byte((distance >> 8) & 0xFF)
	c.chunk.Code[operandStart+1] = byte(distance & 0xFF)
}

// emitLoop emits OP_LOOP with the backward distance to loopStart,
// computed as (current_ip - loop_start + 2) per spec.md §4.5.
func (c *Compiler) emitLoop(loopStart int) {
	distance := len(c.chunk.Code) - loopStart + 2
	c.emit(bytecode.OP_LOOP, distance)
}

func (c *Compiler) addConstant(v value.Value) int {
	if len(c.chunk.Constants) >= 256 {
		panic(DeveloperError{Message: "chunk exceeds 256 constants"})
	}
	return c.chunk.AddConstant(v)
}

// literalValue converts a parsed Literal payload (produced by the
// lexer/parser as nil, bool, int64, float64, or string) into a Value.
func literalValue(raw any) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Boolean(v)
	case int64:
		return value.Number(float64(v))
	case float64:
		return value.Number(v)
	case string:
		return value.String(v)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unsupported literal payload type %T", raw)})
	}
}

// --- Expressions ---

func (c *Compiler) VisitLiteral(lit ast.Literal) any {
	idx := c.addConstant(literalValue(lit.Value))
	c.emit(bytecode.OP_LOAD_CONST, idx)
	return nil
}

func (c *Compiler) VisitGrouping(grouping ast.Grouping) any {
	grouping.Expression.Accept(c)
	return nil
}

func (c *Compiler) VisitVariableExpression(variable ast.Variable) any {
	idx, _, err := c.symbols.Resolve(variable.Name.Lexeme)
	if err != nil {
		panic(err)
	}
	c.emit(bytecode.OP_LOAD_VAR, idx)
	return nil
}

// VisitAssignExpression compiles the right-hand side then emits
// STORE_VAR. Per spec.md §4.5, the stored value is not re-pushed: an
// assignment used as an expression leaves nothing on the stack, so
// callers compiling `Assign` as a statement must not also emit POP.
func (c *Compiler) VisitAssignExpression(assign ast.Assign) any {
	assign.Value.Accept(c)
	idx, _, err := c.symbols.Resolve(assign.Name.Lexeme)
	if err != nil {
		panic(err)
	}
	c.emit(bytecode.OP_STORE_VAR, idx)
	return nil
}

func (c *Compiler) VisitBinary(binary ast.Binary) any {
	binary.Left.Accept(c)
	binary.Right.Accept(c)

	switch binary.Operator.TokenType {
	case token.ADD:
		c.emit(bytecode.OP_ADD)
	case token.SUB:
		c.emit(bytecode.OP_SUB)
	case token.MULT:
		c.emit(bytecode.OP_MUL)
	case token.DIV:
		c.emit(bytecode.OP_DIV)
	case token.MOD:
		c.emit(bytecode.OP_MOD)
	case token.EQUAL_EQUAL:
		c.emit(bytecode.OP_EQ)
	case token.NOT_EQUAL:
		c.emit(bytecode.OP_NEQ)
	case token.LESS:
		c.emit(bytecode.OP_LT)
	case token.LARGER:
		c.emit(bytecode.OP_GT)
	case token.LESS_EQUAL:
		c.emit(bytecode.OP_LTE)
	case token.LARGER_EQUAL:
		c.emit(bytecode.OP_GTE)
	default:
		panic(SemanticError{Message: fmt.Sprintf("unsupported binary operator '%s'", binary.Operator.Lexeme)})
	}
	return nil
}

func (c *Compiler) VisitUnary(unary ast.Unary) any {
	unary.Right.Accept(c)
	switch unary.Operator.TokenType {
	case token.SUB:
		c.emit(bytecode.OP_NEG)
	case token.BANG:
		c.emit(bytecode.OP_NOT)
	default:
		panic(SemanticError{Message: fmt.Sprintf("unsupported unary operator '%s'", unary.Operator.Lexeme)})
	}
	return nil
}

// VisitLogicalExpression compiles && / ||. Short-circuit evaluation is
// not implemented at the bytecode level (spec.md §9, an intentional
// deviation point): both operands are always compiled and a dedicated
// opcode combines them eagerly.
func (c *Compiler) VisitLogicalExpression(logical ast.Logical) any {
	logical.Left.Accept(c)
	logical.Right.Accept(c)
	switch logical.Operator.TokenType {
	case token.AND:
		c.emit(bytecode.OP_AND)
	case token.OR:
		c.emit(bytecode.OP_OR)
	default:
		panic(SemanticError{Message: fmt.Sprintf("unsupported logical operator '%s'", logical.Operator.Lexeme)})
	}
	return nil
}

// VisitCallExpression special-cases the reserved builtin `print`,
// compiled as a direct PRINT of each argument; any other callee
// compiles its arguments left-to-right and emits CALL funcIdx argCount.
func (c *Compiler) VisitCallExpression(call ast.Call) any {
	if variable, ok := call.Callee.(ast.Variable); ok && variable.Name.Lexeme == printBuiltin {
		for _, arg := range call.Arguments {
			arg.Accept(c)
			c.emit(bytecode.OP_PRINT)
		}
		return nil
	}

	variable, ok := call.Callee.(ast.Variable)
	if !ok {
		panic(SemanticError{Message: "function call target must be a name"})
	}
	funcIdx, _, err := c.symbols.Resolve(variable.Name.Lexeme)
	if err != nil {
		panic(err)
	}
	if len(call.Arguments) > 255 {
		panic(SemanticError{Message: "function call has more than 255 arguments"})
	}
	for _, arg := range call.Arguments {
		arg.Accept(c)
	}
	c.emit(bytecode.OP_CALL, funcIdx, len(call.Arguments))
	return nil
}

func (c *Compiler) VisitArrayExpression(array ast.Array) any {
	c.emit(bytecode.OP_NEW_ARRAY)
	for _, element := range array.Elements {
		c.emit(bytecode.OP_DUP)
		element.Accept(c)
		c.emit(bytecode.OP_ARRAY_PUSH)
	}
	return nil
}

func (c *Compiler) VisitIndexExpression(index ast.Index) any {
	index.Target.Accept(c)
	index.Key.Accept(c)
	c.emit(bytecode.OP_GET_INDEX)
	return nil
}

// --- Statements ---

func (c *Compiler) VisitExpressionStmt(exprStmt ast.ExpressionStmt) any {
	// An assignment used as a statement already leaves the stack
	// balanced (STORE_VAR doesn't re-push, see VisitAssignExpression),
	// so it must not also be popped here. A call to the intercepted
	// `print` builtin is the same: VisitCallExpression's print branch
	// consumes its arguments via PRINT and pushes nothing back.
	if _, ok := exprStmt.Expression.(ast.Assign); ok {
		exprStmt.Expression.Accept(c)
		return nil
	}
	if isPrintCall(exprStmt.Expression) {
		exprStmt.Expression.Accept(c)
		return nil
	}
	exprStmt.Expression.Accept(c)
	c.emit(bytecode.OP_POP)
	return nil
}

// isPrintCall reports whether expr is a call to the reserved `print`
// builtin, which VisitCallExpression compiles without leaving a value
// on the stack.
func isPrintCall(expr ast.Expression) bool {
	call, ok := expr.(ast.Call)
	if !ok {
		return false
	}
	variable, ok := call.Callee.(ast.Variable)
	return ok && variable.Name.Lexeme == printBuiltin
}

func (c *Compiler) VisitVarStmt(varStmt ast.VarStmt) any {
	if varStmt.Initializer != nil {
		varStmt.Initializer.Accept(c)
	} else {
		idx := c.addConstant(value.Null())
		c.emit(bytecode.OP_LOAD_CONST, idx)
	}
	idx, _, err := c.symbols.Resolve(varStmt.Name.Lexeme)
	if err != nil {
		panic(err)
	}
	c.emit(bytecode.OP_STORE_VAR, idx)
	return nil
}

func (c *Compiler) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	c.compileStatements(blockStmt.Statements)
	return nil
}

// VisitIfStmt compiles condition, then-branch, and optional
// else-branch, back-patching the JUMP_IF_FALSE/JUMP placeholders per
// spec.md §4.5.
func (c *Compiler) VisitIfStmt(ifStmt ast.IfStmt) any {
	ifStmt.Condition.Accept(c)

	falseJump := c.emitPlaceholderJump(bytecode.OP_JUMP_IF_FALSE)

	ifStmt.Then.Accept(c)

	if ifStmt.Else != nil {
		endJump := c.emitPlaceholderJump(bytecode.OP_JUMP)
		c.patchJump(falseJump)
		ifStmt.Else.Accept(c)
		c.patchJump(endJump)
	} else {
		c.patchJump(falseJump)
	}
	return nil
}

// VisitWhileStmt compiles a while loop: condition re-evaluated before
// every iteration, LOOP emitted to jump back to loopStart.
func (c *Compiler) VisitWhileStmt(whileStmt ast.WhileStmt) any {
	loopStart := len(c.chunk.Code)

	whileStmt.Condition.Accept(c)
	falseJump := c.emitPlaceholderJump(bytecode.OP_JUMP_IF_FALSE)

	whileStmt.Body.Accept(c)
	c.emitLoop(loopStart)

	c.patchJump(falseJump)
	return nil
}

// VisitForStmt compiles a C-style for loop. An absent condition
// compiles as a pushed `true` constant per spec.md §4.5.
func (c *Compiler) VisitForStmt(forStmt ast.ForStmt) any {
	if forStmt.Init != nil {
		forStmt.Init.Accept(c)
	}

	loopStart := len(c.chunk.Code)

	if forStmt.Condition != nil {
		forStmt.Condition.Accept(c)
	} else {
		idx := c.addConstant(value.Boolean(true))
		c.emit(bytecode.OP_LOAD_CONST, idx)
	}
	falseJump := c.emitPlaceholderJump(bytecode.OP_JUMP_IF_FALSE)

	forStmt.Body.Accept(c)

	if forStmt.Increment != nil {
		forStmt.Increment.Accept(c)
		if _, ok := forStmt.Increment.(ast.Assign); !ok {
			c.emit(bytecode.OP_POP)
		}
	}

	c.emitLoop(loopStart)
	c.patchJump(falseJump)
	return nil
}

// VisitFunctionStmt reserves a symbol index for the function's name
// but emits no body code in this revision: user-defined function
// bodies are not yet first-class bytecode entities (spec.md §3, §9).
func (c *Compiler) VisitFunctionStmt(functionStmt ast.FunctionStmt) any {
	if _, _, err := c.symbols.Resolve(functionStmt.Name.Lexeme); err != nil {
		panic(err)
	}
	return nil
}

// VisitSwitchStmt is unimplemented at the codegen layer per spec.md
// §4.5/§7: the construct parses but compiling it is a semantic error.
func (c *Compiler) VisitSwitchStmt(switchStmt ast.SwitchStmt) any {
	panic(SemanticError{Message: "switch statement codegen is not implemented"})
}

// VisitBreakStmt mirrors the switch precedent: break parses but has no
// codegen in this revision, since loops have no exit-jump bookkeeping.
func (c *Compiler) VisitBreakStmt(breakStmt ast.BreakStmt) any {
	panic(SemanticError{Message: "'break' codegen is not implemented"})
}

// VisitContinueStmt mirrors VisitBreakStmt.
func (c *Compiler) VisitContinueStmt(continueStmt ast.ContinueStmt) any {
	panic(SemanticError{Message: "'continue' codegen is not implemented"})
}

// VisitImportStmt resolves Path through the injected Importer, lexes
// and parses it into a sub-AST, then compiles those statements into
// the same chunk and symbol table — splicing the included unit's code
// at the point of the import with shared names and constants, per
// spec.md §4.5.
func (c *Compiler) VisitImportStmt(importStmt ast.ImportStmt) any {
	if c.importer == nil {
		panic(SemanticError{Message: "import statement used without an importer configured"})
	}

	path, _ := importStmt.Path.Literal.(string)
	source, err := c.importer.ReadSource(path)
	if err != nil {
		panic(SemanticError{Message: fmt.Sprintf("could not import '%s': %s", path, err.Error())})
	}

	tokens, lexErr := lexer.New(source).Scan()
	if lexErr != nil {
		panic(SemanticError{Message: fmt.Sprintf("could not import '%s': %s", path, lexErr.Error())})
	}

	statements, parseErrs := parser.Make(tokens).Parse()
	if len(parseErrs) > 0 {
		panic(SemanticError{Message: fmt.Sprintf("could not import '%s': %s", path, parseErrs[0].Error())})
	}

	c.compileStatements(statements)
	return nil
}
