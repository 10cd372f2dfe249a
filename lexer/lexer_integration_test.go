// ----------------------------------------------------------------------------
// FILE: lexer/lexer_integration_test.go
// ----------------------------------------------------------------------------
package lexer

import (
	"testing"

	"github.com/amoghasbhardwaj/nac/token"
)

// TestIntegrationLexer tests the lexer's ability to tokenize a small function
// definition, verifying the interaction between keywords, identifiers, and
// the array(n) syntax.
func TestIntegrationLexer(t *testing.T) {
	input := `fn f(n) { rn array(n); };`
	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.FN, "fn"},
		{token.IDENT, "f"},
		{token.LPAREN, "("},
		{token.IDENT, "n"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RN, "rn"},
		{token.ARRAY, "array"},
		{token.LPAREN, "("},
		{token.IDENT, "n"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, e := range expected {
		tok := l.NextToken()
		if tok.Type != e.typ || tok.Literal != e.literal {
			t.Fatalf("[%d] got %q %q, want %q %q", i, tok.Type, tok.Literal, e.typ, e.literal)
		}
	}
}
