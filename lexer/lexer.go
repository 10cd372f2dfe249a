// ----------------------------------------------------------------------------
// FILE: lexer/lexer.go
// ----------------------------------------------------------------------------
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/token"
)

// Lexer represents the state of the source code scanner.
// It iterates through the input string and produces a stream of tokens.
type Lexer struct {
	input        string
	position     int  // Current position in input (points to current char)
	readPosition int  // Current reading position in input (after current char)
	ch           rune // Current char under examination
	line         int  // Line number for error reporting
	column       int  // Column number for error reporting

	// lastSignificant remembers the kind of the previous emitted token, used to
	// disambiguate a leading '-' before a digit: a number literal if the previous
	// token could not end an expression, a MINUS operator otherwise.
	lastSignificant token.TokenType

	// diags receives Lex-kind diagnostics for unrecognized characters. It is nil
	// unless SetDiagnostics is called, so a Lexer used purely for token-stream
	// inspection (the "nac tokens" dump, benchmarks) doesn't need one wired up.
	diags *diag.Diagnostics
}

// SetDiagnostics wires d as the destination for this Lexer's own diagnostics
// (currently just "unknown character" reports). Called by parser.New so lex-level
// errors are tagged diag.Lex instead of falling through to the parser's generic
// unexpected-token error.
func (l *Lexer) SetDiagnostics(d *diag.Diagnostics) {
	l.diags = d
}

// New initializes a new Lexer with the given input string. A leading UTF-8 BOM,
// if present, is stripped so source files saved with one still lex cleanly.
func New(input string) *Lexer {
	input = strings.TrimPrefix(input, string(rune(0xFEFF)))
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position indices.
// It handles ASCII and UTF-8 characters.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL (signifies EOF)
		l.position = l.readPosition
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size

		if r == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
}

// peekChar returns the next character without advancing the lexer's position.
// Useful for lookahead logic (e.g., distinguishing '=' from '==').
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// endsExpression reports whether a token of this kind can stand as the last
// token of a complete expression (so that a following '-' must be a binary
// minus, not the start of a negative number literal).
func endsExpression(t token.TokenType) bool {
	switch t {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.RPAREN, token.RBRACKET:
		return true
	}
	return false
}

// NextToken inspects the current character and returns the corresponding Token.
// It handles whitespace skipping, comment ignoring, and delegates to specific
// reader methods for identifiers, numbers, and strings.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	// NaC comments run to end of line only; there are no block comments.
	if l.ch == '/' && l.peekChar() == '/' {
		l.skipSingleLineComment()
		return l.NextToken()
	}

	var tok token.Token

	switch l.ch {
	case '+':
		if l.peekChar() == '+' {
			tok = l.newToken(token.INCR, "++")
			l.readChar()
		} else {
			tok = l.newToken(token.PLUS, "+")
		}
	case '-':
		// A '-' immediately followed by a digit starts a negative number literal
		// only when the previous token could not itself end an expression;
		// otherwise it is the binary/unary minus operator. See DESIGN.md (lexer).
		if unicode.IsDigit(l.peekChar()) && !endsExpression(l.lastSignificant) {
			return l.emit(l.readNumberToken())
		}
		if l.peekChar() == '-' {
			tok = l.newToken(token.DECR, "--")
			l.readChar()
		} else {
			tok = l.newToken(token.MINUS, "-")
		}
	case '*':
		tok = l.newToken(token.STAR, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '%':
		tok = l.newToken(token.PERCENT, "%")
	case '=':
		if l.peekChar() == '=' {
			tok = l.newToken(token.EQ, "==")
			l.readChar()
		} else {
			tok = l.newToken(token.ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.newToken(token.NOT_EQ, "!=")
			l.readChar()
		} else {
			tok = l.newToken(token.BANG, "!")
		}
	case '<':
		if l.peekChar() == '=' {
			tok = l.newToken(token.LT_EQ, "<=")
			l.readChar()
		} else {
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.newToken(token.GT_EQ, ">=")
			l.readChar()
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '&':
		if l.peekChar() == '&' {
			tok = l.newToken(token.AND, "&&")
			l.readChar()
		} else {
			tok = l.illegalToken()
		}
	case '|':
		if l.peekChar() == '|' {
			tok = l.newToken(token.OR, "||")
			l.readChar()
		} else {
			tok = l.illegalToken()
		}
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '{':
		tok = l.newToken(token.LBRACE, "{")
	case '}':
		tok = l.newToken(token.RBRACE, "}")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case ':':
		tok = l.newToken(token.COLON, ":")
	case ';':
		tok = l.newToken(token.SEMICOLON, ";")
	case '"':
		tok.Type = token.STRING
		tok.Line = l.line
		tok.Column = l.column
		tok.Literal = l.readString()
		return l.emit(tok)
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.Line = l.line
		tok.Column = l.column
		return l.emit(tok)
	default:
		if isLetter(l.ch) {
			tok.Line = l.line
			tok.Column = l.column
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return l.emit(tok)
		} else if unicode.IsDigit(l.ch) {
			return l.emit(l.readNumberToken())
		} else {
			tok = l.illegalToken()
		}
	}

	l.readChar()
	return l.emit(tok)
}

// illegalToken reports an unknown-character diagnostic (diag.Lex, per spec.md §7's
// lex/parse error taxonomy) and builds the ILLEGAL token for l.ch. Recovery is
// byte-level: the caller's trailing readChar() advances past the bad character so
// scanning resumes at the next one.
func (l *Lexer) illegalToken() token.Token {
	if l.diags != nil {
		l.diags.Report(diag.Lex, l.line, l.column, "unknown character %q", l.ch)
	}
	return l.newToken(token.ILLEGAL, string(l.ch))
}

// emit records tok's type as the lexer's last significant token before returning it.
func (l *Lexer) emit(tok token.Token) token.Token {
	l.lastSignificant = tok.Type
	return tok
}

// newToken creates a Token instance with the given type and literal.
func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{
		Type:    tokenType,
		Literal: literal,
		Line:    l.line,
		Column:  l.column,
	}
}

// readIdentifier reads in an identifier and advances the lexer's position
// until it encounters a non-letter, non-digit character.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumberToken reads a number (integer or float) from the input, including
// an optional leading '-' already established by the caller to belong to the literal.
func (l *Lexer) readNumberToken() token.Token {
	line := l.line
	column := l.column
	position := l.position
	isFloat := false

	if l.ch == '-' {
		l.readChar()
	}

	for unicode.IsDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.input[position:l.position]
	if isFloat {
		return token.Token{Type: token.FLOAT, Literal: literal, Line: line, Column: column}
	}
	return token.Token{Type: token.INT, Literal: literal, Line: line, Column: column}
}

// readString reads a string literal enclosed in double quotes, applying the
// \n \t \\ \" escapes. Any other \x escape yields the literal character x.
// The literal is returned at full length; the MAX_STRING_LEN-1 byte cap is
// applied when the evaluator builds the Str value (see value.NewString).
func (l *Lexer) readString() string {
	var out strings.Builder
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case '"':
				out.WriteRune('"')
			case '\\':
				out.WriteRune('\\')
			default:
				out.WriteRune(l.ch)
			}
		} else {
			out.WriteRune(l.ch)
		}
	}
	if l.ch == '"' {
		l.readChar()
	}
	return out.String()
}

// skipWhitespace skips over whitespace characters.
func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// skipSingleLineComment consumes characters until a newline is found.
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// isLetter checks if a rune is a letter, underscore, or '$' (valid for identifiers).
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}
