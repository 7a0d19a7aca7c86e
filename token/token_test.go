package token

import "testing"

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		wantLex   string
	}{
		{name: "ASSIGN", tokenType: ASSIGN, wantLex: "="},
		{name: "MULT", tokenType: MULT, wantLex: "*"},
		{name: "ADD", tokenType: ADD, wantLex: "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, 3, 7)
			if got.TokenType != tt.tokenType {
				t.Errorf("TokenType = %v, want %v", got.TokenType, tt.tokenType)
			}
			if got.Lexeme != tt.wantLex {
				t.Errorf("Lexeme = %q, want %q", got.Lexeme, tt.wantLex)
			}
			if got.Line != 3 || got.Column != 7 {
				t.Errorf("position = (%d, %d), want (3, 7)", got.Line, got.Column)
			}
			if got.Literal != nil {
				t.Errorf("Literal = %v, want nil", got.Literal)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	got := CreateLiteralToken(INT, int64(42), "42", 1, 1)

	if got.TokenType != INT {
		t.Errorf("TokenType = %v, want %v", got.TokenType, INT)
	}
	if got.Lexeme != "42" {
		t.Errorf("Lexeme = %q, want %q", got.Lexeme, "42")
	}
	if got.Literal != int64(42) {
		t.Errorf("Literal = %v, want int64(42)", got.Literal)
	}
}

func TestTokenString(t *testing.T) {
	tok := CreateLiteralToken(IDENTIFIER, nil, "count", 1, 1)
	want := `Token {Type: IDENTIFIER, Value: "count"}`
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
