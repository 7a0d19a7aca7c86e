// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser

//	A Recursive descent parser is a top-down parser because it starts from the top
//
// grammar rule and works its way down in to the nested sub-experessions before reaching
// the leaves of the syntax tree (terminal rules)
package parser

import (
	"fmt"
	"embercask/ast"
	"embercask/token"
)

var comparisonTokenTypes = []token.TokenType{
	token.LARGER,
	token.LARGER_EQUAL,
	token.LESS,
	token.LESS_EQUAL,
}

var equalityTokenTypes = []token.TokenType{
	token.NOT_EQUAL,
	token.EQUAL_EQUAL,
}

var termTokenTypes = []token.TokenType{
	token.SUB,
	token.ADD,
}

var factorExpressionTypes = []token.TokenType{
	token.MULT,
	token.DIV,
	token.MOD,
}

var unaryExpressionTypes = []token.TokenType{
	token.BANG,
	token.SUB,

	// NOTE: not supported operands on unary expressions are included
	// So they can be parsed, but then the compiler can report a more detailed
	// SemanticError at compile time. This is known as "error productions"
	token.MULT,
	token.ADD,
	token.DIV,
	token.MOD,
}

type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: The parsers position is always one unit ahead of the
// current token

// Initializes and returns a new Parser instance.
//
// Parameters:
//   - tokens: []token.Token
//     The tokens created by the lexer. The parser starts at position 0.
//
// Returns:
//   - *Parser: A pointer to a newly created Parser instance.
func Make(tokens []token.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		position: 0,
	}
}

// Print prints the AST as prettified JSON to standard output.
func (parser *Parser) Print(statements []ast.Stmt) {
	_, err := PrintASTJSON(statements)
	if err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintToFile writes the AST for the provided statements to a .json file at the given path.
func (parser *Parser) PrintToFile(statements []ast.Stmt, path string) error {
	return WriteASTJSONToFile(statements, path)
}

// Peeks the token at the parser's current position,
// without advancing the parser's position.
// Returns:
//   - token.Token: The token at the parser's current position
func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

// Retrieves the token at the parser's previous position
// (position -1)
//
// Returns:
//   - token.Token: The token at the previous position
func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

// Increments the parser's position by one unit and
// consumes the current token
//
// Returns:
//   - token.Token: The token at the previous position
func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

// Determines of the parser has finished scanning all the tokens.
//
// Returns:
//   - bool: true if the parser has finished scanning, false otherwise
func (parser *Parser) isFinished() bool {
	tok := parser.peek()
	return tok.TokenType == token.EOF
}

// Determines if the provided tokenType matches the TokenType
// at the parser's current position
//
// Returns
//   - bool: true if the TokenType matches, false otherwise
func (parser *Parser) checkType(tokeType token.TokenType) bool {
	if parser.isFinished() {
		return false
	}
	tok := parser.peek()
	return tok.TokenType == tokeType
}

// Determines if the TokenType at the current
// position matches any of the provided tokenTypes. If a match is
// found the parser increments its position and consumes the
// current token
//
// Returns
//   - bool: true if a match was found, false otherwise
func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for i := range tokenTypes {
		tokenType := tokenTypes[i]

		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// Parse parses the entire token stream into a slice of Stmt (statement) nodes,
// continuing until the end of input. Errors during parsing are collected
// but parsing continues to find additional errors where possible.
//
// Returns:
//   - []Stmt: the successfully parsed statements.
//   - []error: all errors that occurred during parsing.
func (parser *Parser) Parse() ([]ast.Stmt, []error) {
	statements := []ast.Stmt{}
	errors := []error{}

	for {
		if parser.isFinished() {
			break
		}
		statement, err := parser.declaration()
		if err != nil {
			errors = append(errors, err)
			parser.synchronize()
			continue
		}
		statements = append(statements, statement)
	}

	return statements, errors
}

// synchronize discards tokens until it has consumed a ';' or '}',
// putting the parser back at a likely statement boundary so that
// parsing can recover and keep collecting further errors. A failed
// statement is never reported as part of the successful output.
func (parser *Parser) synchronize() {
	for !parser.isFinished() {
		consumed := parser.advance()
		if consumed.TokenType == token.SEMICOLON || consumed.TokenType == token.RCUR {
			return
		}
	}
}

// declaration parses a declaration statement.
//
// It first checks if the next token is a variable declaration keyword (e.g., `var`)
// or a function declaration, dispatching to variableDeclaration/functionDeclaration
// respectively. Anything else falls through to a general statement.
//
// Returns the parsed statement (Stmt) or an error if parsing fails.
func (parser *Parser) declaration() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.VAR, token.LET, token.CONST}) {
		return parser.variableDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.FUNC}) {
		return parser.functionDeclaration()
	}
	return parser.statement()
}

// functionDeclaration parses a function definition:
// `function NAME ( params ) block`.
func (parser *Parser) functionDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected function name")
	if err != nil {
		return nil, err
	}

	if _, err := parser.consume(token.LPA, "Expected '(' after function name"); err != nil {
		return nil, err
	}

	params := []token.Token{}
	if !parser.checkType(token.RPA) {
		for {
			param, err := parser.consume(token.IDENTIFIER, "Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}

	if _, err := parser.consume(token.RPA, "Expected ')' after parameters"); err != nil {
		return nil, err
	}

	if _, err := parser.consume(token.LCUR, "Expected '{' before function body"); err != nil {
		return nil, err
	}

	body, err := parser.block()
	if err != nil {
		return nil, err
	}

	return ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// variableDeclaration parses a variable declaration statement.
// It expects an identifier token for the variable name
// followed by an optional '=' and an initializer expression.
// Returns:
//   - ast.VarStmt: A VarStmt AST node epresenting the variable declaration.
//   - error: A SyntaxError if parsing fails. A declaration without an
//     initializer is accepted and yields a nil Initializer.
func (parser *Parser) variableDeclaration() (ast.Stmt, error) {
	tok, consumeError := parser.consume(token.IDENTIFIER, "Expected variable name")
	if consumeError != nil {
		return nil, consumeError
	}

	var initialiser ast.Expression
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		var err error
		initialiser, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return ast.VarStmt{
		Name:        tok,
		Initializer: initialiser,
	}, nil
}

// statement parses a single statement: a block, an if, while, for or
// switch statement, an import, a break or continue, or an expression
// statement.
//
// `print` is not a keyword here: `print(...)` parses as an ordinary
// call expression and is intercepted at compile time (see
// compiler.VisitCallExpression), per spec.md §4.5.
//
// Returns:
//   - Stmt: the parsed statement node.
//   - error: if parsing fails, otherwise nil.
func (parser *Parser) statement() (ast.Stmt, error) {

	if parser.isMatch([]token.TokenType{token.LCUR}) {
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	}

	if parser.isMatch([]token.TokenType{token.IF}) {
		return parser.ifStatement()
	}

	if parser.isMatch([]token.TokenType{token.WHILE}) {
		return parser.WhileStatement()
	}

	if parser.isMatch([]token.TokenType{token.FOR}) {
		return parser.forStatement()
	}

	if parser.isMatch([]token.TokenType{token.SWITCH}) {
		return parser.switchStatement()
	}

	if parser.isMatch([]token.TokenType{token.IMPORT}) {
		return parser.importStatement()
	}

	if parser.isMatch([]token.TokenType{token.BREAK}) {
		keyword := parser.previous()
		if _, err := parser.consume(token.SEMICOLON, "Expected ';' after 'break'"); err != nil {
			return nil, err
		}
		return ast.BreakStmt{Keyword: keyword}, nil
	}

	if parser.isMatch([]token.TokenType{token.CONTINUE}) {
		keyword := parser.previous()
		if _, err := parser.consume(token.SEMICOLON, "Expected ';' after 'continue'"); err != nil {
			return nil, err
		}
		return ast.ContinueStmt{Keyword: keyword}, nil
	}

	expression, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	exprStmt := ast.ExpressionStmt{Expression: expression}

	return exprStmt, nil
}

// forStatement parses a C-style for loop:
// `for (init? ; cond? ; inc?) block`. init may be a declaration or an
// expression; cond and inc may be omitted, in which case an absent
// condition compiles as always-true (see the compiler package).
func (parser *Parser) forStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch {
	case parser.isMatch([]token.TokenType{token.SEMICOLON}):
		init = nil
	case parser.isMatch([]token.TokenType{token.VAR, token.LET, token.CONST}):
		init, err = parser.variableDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		initExpr, exprErr := parser.expression()
		if exprErr != nil {
			return nil, exprErr
		}
		if _, err := parser.consume(token.SEMICOLON, "Expected ';' after for-loop initializer"); err != nil {
			return nil, err
		}
		init = ast.ExpressionStmt{Expression: initExpr}
	}

	var condition ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		condition, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after for-loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !parser.checkType(token.RPA) {
		increment, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after for-loop clauses"); err != nil {
		return nil, err
	}

	body, err := parser.requireBlock("for body")
	if err != nil {
		return nil, err
	}

	return ast.ForStmt{
		Init:      init,
		Condition: condition,
		Increment: increment,
		Body:      body,
	}, nil
}

// switchStatement parses `switch (expr) { (case literal : block)* (default : block)? }`.
func (parser *Parser) switchStatement() (ast.Stmt, error) {
	subject := parser.previous()

	if _, err := parser.consume(token.LPA, "Expected '(' after 'switch'"); err != nil {
		return nil, err
	}
	value, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after switch value"); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' before switch body"); err != nil {
		return nil, err
	}

	cases := []ast.SwitchCase{}
	var defaultBody []ast.Stmt

	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		if parser.isMatch([]token.TokenType{token.CASE}) {
			caseValue, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if _, err := parser.consume(token.COLON, "Expected ':' after case value"); err != nil {
				return nil, err
			}
			body, err := parser.caseBody()
			if err != nil {
				return nil, err
			}
			cases = append(cases, ast.SwitchCase{Value: caseValue, Body: body})
			continue
		}

		if parser.isMatch([]token.TokenType{token.DEFAULT}) {
			if _, err := parser.consume(token.COLON, "Expected ':' after 'default'"); err != nil {
				return nil, err
			}
			body, err := parser.caseBody()
			if err != nil {
				return nil, err
			}
			defaultBody = body
			continue
		}

		currentToken := parser.peek()
		return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "Expected 'case' or 'default' in switch body")
	}

	if _, err := parser.consume(token.RCUR, "Expected '}' after switch body"); err != nil {
		return nil, err
	}

	return ast.SwitchStmt{Subject: subject, Value: value, Cases: cases, Default: defaultBody}, nil
}

// caseBody parses the statements belonging to a single case/default arm,
// stopping at the next 'case', 'default', or the closing '}'.
func (parser *Parser) caseBody() ([]ast.Stmt, error) {
	body := []ast.Stmt{}
	for !parser.checkType(token.CASE) && !parser.checkType(token.DEFAULT) && !parser.checkType(token.RCUR) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

// importStatement parses `import "path" ;`.
func (parser *Parser) importStatement() (ast.Stmt, error) {
	path, err := parser.consume(token.STRING, "Expected a string path after 'import'")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expected ';' after import path"); err != nil {
		return nil, err
	}
	return ast.ImportStmt{Path: path}, nil
}

// requireBlock consumes a '{' and parses the block it introduces,
// returning it wrapped as an ast.BlockStmt. Used anywhere the grammar
// requires a brace-delimited block rather than an arbitrary statement
// (if/else/while/for bodies; function bodies consume their '{' in
// functionDeclaration and call block directly).
func (parser *Parser) requireBlock(context string) (ast.Stmt, error) {
	if _, err := parser.consume(token.LCUR, fmt.Sprintf("Expected '{' before %s", context)); err != nil {
		return nil, err
	}
	statements, err := parser.block()
	if err != nil {
		return nil, err
	}
	return ast.BlockStmt{Statements: statements}, nil
}

// WhileStatement parses a while loop statement: "while (expr) block".
// Returns:
//   - ast.WhileStmt with the parsed condition and body.
//   - error: if parsing the condition or body fails.
func (parser *Parser) WhileStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after 'while'"); err != nil {
		return nil, err
	}
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after while condition"); err != nil {
		return nil, err
	}

	body, err := parser.requireBlock("while body")
	if err != nil {
		return nil, err
	}

	return ast.WhileStmt{
		Condition: expr,
		Body:      body,
	}, nil

}

// ifStatement parses an if-statement: "if (expr) block (else (if-stmt|block))?".
// Returns:
//   - ast.IfStmt: an IfStmt AST node.
//   - error: if any part fails to parse.
func (parser *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	conditionExpr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expected ')' after if condition"); err != nil {
		return nil, err
	}

	thenStmt, err := parser.requireBlock("if body")
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt = nil
	if parser.isMatch([]token.TokenType{token.ELSE}) {
		if parser.isMatch([]token.TokenType{token.IF}) {
			stmt, err := parser.ifStatement()
			if err != nil {
				return nil, err
			}
			elseStmt = stmt
		} else {
			stmt, err := parser.requireBlock("else body")
			if err != nil {
				return nil, err
			}
			elseStmt = stmt
		}
	}

	return ast.IfStmt{
		Condition: conditionExpr,
		Then:      thenStmt,
		Else:      elseStmt,
	}, nil
}

// block parser a block statement consisting of a list of
// statement AST nodes.
// Returns:
//   - [] Stmt: A list of parsed declarations or statements
//   - error: If the block statement cant be parsed.
func (parser *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	for !parser.isMatch([]token.TokenType{token.RCUR}) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

	}

	previousToken := parser.previous()
	if previousToken.TokenType != token.RCUR {
		errMsg := fmt.Sprintf("Expected '%s' after block.", token.RCUR)
		err := CreateSyntaxError(previousToken.Line, previousToken.Column, errMsg)
		return nil, err
	}
	return statements, nil
}

// expression is the entry point for parsing expressions. It begins at
// the assignment rule, which encompasses all lower-precedence rules.
//
// Returns:
//   - Expression: the parsed expression AST node.
//   - error: if parsing fails.
func (parser *Parser) expression() (ast.Expression, error) {
	return parser.assignment()
}

// assignment parses an assignment expression from the token stream.
//
// Steps:
//  1. First, parse the left-hand side (LHS) as a logical-or expression.
//     This ensures proper precedence, so assignment has lower precedence
//     than logical, equality and arithmetic operators.
//  2. If the next token is an '=' (ASSIGN), then:
//     - Recursively call `assignment` to parse the right-hand side (RHS).
//     - Check if the LHS is a valid assignment target:
//     * If it's a Variable, produce an Assign AST node with the variable name
//     and the parsed RHS expression.
//     * Otherwise, produce a syntax error, since only variables can be assigned.
//  3. If no '=' follows, just return the previously parsed logical-or expression
//     as the result.
//
// Returns:
//   - Expression: Either an Assign node (for valid assignment expressions) or
//     the underlying expression if no assignment is found.
//   - error: Parsing errors such as invalid assignment targets or failed parsing of sub-expressions.
//
// Example:
// Input:  x = 10
// AST:    Assign{Name: x, Value: Literal(10)}
func (parser *Parser) assignment() (ast.Expression, error) {
	expression, err := parser.or()
	if err != nil {
		return nil, err
	}
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		equalsToken := parser.previous()
		value, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch v := expression.(type) {
		case ast.Variable:
			name := v.Name
			return ast.Assign{Name: name, Value: value}, nil

		default:
			msg := "Invalid assignment"
			return nil, CreateSyntaxError(equalsToken.Line, equalsToken.Column, msg)
		}
	}

	return expression, nil
}

// or parses a logical OR expression from the token stream.
// It first parses an AND expression on the left side, then consumes
// any sequence of OR operators, building a left-associative AST of logical expressions.
// Returns:
//   - ast.Expression: The constructed ast.Expression node
//   - error: An error if parsing fails.
func (parser *Parser) or() (ast.Expression, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.OR}) {
		op := parser.previous()
		rightExpr, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{
			Left:     expr,
			Operator: op,
			Right:    rightExpr,
		}
	}

	return expr, nil
}

// and parses a logical AND expression from the token stream.
// It first parses an equality expression on the left side,
// then consumes any sequence of AND operators, building a left-associative
// abstract syntax tree (AST) of logical expressions.
// Returns:
//   - ast.Expression: The constructed ast.Expression node
//   - error: An error if parsing fails.
func (parser *Parser) and() (ast.Expression, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.AND}) {
		op := parser.previous()
		rightExpr, err := parser.equality()
		if err != nil {
			return nil, err
		}

		expr = ast.Logical{
			Left:     expr,
			Operator: op,
			Right:    rightExpr,
		}
	}
	return expr, nil
}

// equality parses equality expressions using operators "==" and "!=".
//
// Returns:
//   - Expression: a Binary node (or sub-expression) representing equality comparison.
//   - error: if parsing fails.
func (parser *Parser) equality() (ast.Expression, error) {
	exp, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(equalityTokenTypes) {
		operator := parser.previous()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// comparison parses comparison expressions using operators "<", "<=", ">", ">=".
//
// Returns:
//   - Expression: a Binary node (or sub-expression) representing a comparison.
//   - error: if parsing fails.
func (parser *Parser) comparison() (ast.Expression, error) {
	exp, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(comparisonTokenTypes) {
		operator := parser.previous()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// term parses addition and subtraction expressions using operators "+" and "-".
//
// Returns:
//   - Expression: a Binary node (or sub-expression) representing addition or subtraction.
//   - error: if parsing fails.
func (parser *Parser) term() (ast.Expression, error) {
	exp, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(termTokenTypes) {
		operator := parser.previous()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// factor parses multiplication, division and modulo expressions using operators "*", "/" and "%".
//
// Returns:
//   - Expression: a Binary node (or sub-expression) representing multiplication, division or modulo.
//   - error: if parsing fails.
func (parser *Parser) factor() (ast.Expression, error) {
	exp, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(factorExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{
			Left:     exp,
			Operator: operator,
			Right:    right,
		}
	}
	return exp, nil
}

// unary parses unary prefix expressions using operators "!" or "-".
// Examples: "!true", "-x".
//
// Returns:
//   - Expression: a Unary node if a unary operator was found, otherwise defers to primary().
//   - error: if parsing fails.
func (parser *Parser) unary() (ast.Expression, error) {
	if parser.isMatch(unaryExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{
			Operator: operator,
			Right:    right,
		}, nil
	}
	return parser.primary()
}

// primary parses the most basic forms of expressions:
//   - Literals: true, false, null, strings, numbers
//   - Grouping: (expression)
//   - Array literals: [ expr (, expr)* ] (empty allowed)
//   - Identifiers, optionally followed by a call (args) or by one or
//     more postfix index accesses [expr], applied repeatedly.
//
// If no valid token matches, returns a syntax error.
//
// Returns:
//   - Expression: the parsed primary expression, with any postfix
//     call/index operators applied.
//   - error: if no valid primary expression can be parsed.
func (parser *Parser) primary() (ast.Expression, error) {
	base, err := parser.primaryBase()
	if err != nil {
		return nil, err
	}
	return parser.postfix(base)
}

// primaryBase parses a single unsuffixed primary expression.
func (parser *Parser) primaryBase() (ast.Expression, error) {
	if parser.isMatch([]token.TokenType{token.FALSE}) {
		return ast.Literal{Value: false}, nil
	}
	if parser.isMatch([]token.TokenType{token.NULL}) {
		return ast.Literal{Value: nil}, nil
	}
	if parser.isMatch([]token.TokenType{token.TRUE}) {
		return ast.Literal{Value: true}, nil
	}

	if parser.isMatch([]token.TokenType{token.FLOAT, token.INT, token.STRING}) {
		return ast.Literal{Value: parser.previous().Literal}, nil
	}

	if parser.isMatch([]token.TokenType{token.IDENTIFIER}) {
		return ast.Variable{Name: parser.previous()}, nil
	}

	if parser.isMatch([]token.TokenType{token.LBRA}) {
		bracket := parser.previous()
		elements := []ast.Expression{}
		if !parser.checkType(token.RBRA) {
			for {
				element, err := parser.expression()
				if err != nil {
					return nil, err
				}
				elements = append(elements, element)
				if !parser.isMatch([]token.TokenType{token.COMMA}) {
					break
				}
			}
		}
		if _, err := parser.consume(token.RBRA, "Expected ']' after array elements"); err != nil {
			return nil, err
		}
		return ast.Array{Elements: elements, Bracket: bracket}, nil
	}

	if parser.isMatch([]token.TokenType{token.LPA}) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		_, consumeErr := parser.consume(token.RPA, fmt.Sprintf("expression is missing '%s'", token.RPA))
		if consumeErr != nil {
			return nil, consumeErr
		}
		return ast.Grouping{Expression: expr}, nil
	}

	currentToken := parser.peek()
	return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "Unrecognised expression.")
}

// postfix applies any trailing call "(args)" or repeated index "[expr]"
// operators to expr, left-associatively.
func (parser *Parser) postfix(expr ast.Expression) (ast.Expression, error) {
	for {
		switch {
		case parser.isMatch([]token.TokenType{token.LPA}):
			paren := parser.previous()
			arguments := []ast.Expression{}
			if !parser.checkType(token.RPA) {
				for {
					argument, err := parser.expression()
					if err != nil {
						return nil, err
					}
					arguments = append(arguments, argument)
					if !parser.isMatch([]token.TokenType{token.COMMA}) {
						break
					}
				}
			}
			if _, err := parser.consume(token.RPA, "Expected ')' after arguments"); err != nil {
				return nil, err
			}
			expr = ast.Call{Callee: expr, Paren: paren, Arguments: arguments}

		case parser.isMatch([]token.TokenType{token.LBRA}):
			bracket := parser.previous()
			key, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if _, err := parser.consume(token.RBRA, "Expected ']' after index expression"); err != nil {
				return nil, err
			}
			expr = ast.Index{Target: expr, Key: key, Bracket: bracket}

		default:
			return expr, nil
		}
	}
}

// Consumes the current token by advancing the parsers current position by
// one unit if the `tokenType` matches the token type of the parsers current
// position.
//
//	Returns:
//	- A SyntaxError if the provided `tokenType` does not match the `TokenType`
//		at the parsers current position
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	currentToken := parser.peek()
	return token.CreateToken(token.EOF, 0, 0), CreateSyntaxError(currentToken.Line, currentToken.Column, errorMessage)
}
