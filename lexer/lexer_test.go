package lexer

import (
	"testing"

	"embercask/token"
)

func tokenTypes(tokens []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.TokenType
	}
	return types
}

func sameTypes(t *testing.T, got []token.TokenType, want []token.TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanOperators(t *testing.T) {
	scanner := New("==/=*+>-<!=<=>=!!")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() raised an error: %v", err)
	}

	want := []token.TokenType{
		token.EQUAL_EQUAL,
		token.DIV,
		token.ASSIGN,
		token.MULT,
		token.ADD,
		token.LARGER,
		token.SUB,
		token.LESS,
		token.NOT_EQUAL,
		token.LESS_EQUAL,
		token.LARGER_EQUAL,
		token.BANG,
		token.BANG,
		token.EOF,
	}
	sameTypes(t, tokenTypes(got), want)
}

func TestScanPunctuation(t *testing.T) {
	scanner := New("(){}**;+!=<=")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() raised an error: %v", err)
	}

	want := []token.TokenType{
		token.LPA,
		token.RPA,
		token.LCUR,
		token.RCUR,
		token.MULT,
		token.MULT,
		token.SEMICOLON,
		token.ADD,
		token.NOT_EQUAL,
		token.LESS_EQUAL,
		token.EOF,
	}
	sameTypes(t, tokenTypes(got), want)
}

func TestScanModuloOperator(t *testing.T) {
	scanner := New("10 % 3")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() raised an error: %v", err)
	}

	want := []token.TokenType{token.INT, token.MOD, token.INT, token.EOF}
	sameTypes(t, tokenTypes(got), want)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	scanner := New("var total = count;")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() raised an error: %v", err)
	}

	want := []token.TokenType{
		token.VAR,
		token.IDENTIFIER,
		token.ASSIGN,
		token.IDENTIFIER,
		token.SEMICOLON,
		token.EOF,
	}
	sameTypes(t, tokenTypes(got), want)

	if got[1].Lexeme != "total" {
		t.Errorf("identifier lexeme = %q, want %q", got[1].Lexeme, "total")
	}
}

func TestScanStringLiteral(t *testing.T) {
	scanner := New(`"hello world"`)
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() raised an error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("token count = %d, want 2", len(got))
	}
	if got[0].TokenType != token.STRING {
		t.Fatalf("token type = %s, want %s", got[0].TokenType, token.STRING)
	}
	if got[0].Literal != "hello world" {
		t.Errorf("literal = %v, want %q", got[0].Literal, "hello world")
	}
}

func TestScanNumberLiterals(t *testing.T) {
	scanner := New("42 3.14")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan() raised an error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("token count = %d, want 3", len(got))
	}
	if got[0].TokenType != token.INT || got[0].Literal != int64(42) {
		t.Errorf("first literal = %v (%s), want int64(42)", got[0].Literal, got[0].TokenType)
	}
	if got[1].TokenType != token.FLOAT || got[1].Literal != float64(3.14) {
		t.Errorf("second literal = %v (%s), want float64(3.14)", got[1].Literal, got[1].TokenType)
	}
}
