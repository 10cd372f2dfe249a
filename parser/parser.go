// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Implements a Recursive Descent Parser with an explicit precedence ladder for
//          expressions. It converts a stream of Tokens (from the Lexer) into an Abstract
//          Syntax Tree (AST). This component defines the grammar and syntax rules of NaC.
// ==============================================================================================

package parser

import (
	"strconv"

	"github.com/amoghasbhardwaj/nac/ast"
	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/lexer"
	"github.com/amoghasbhardwaj/nac/token"
)

// Parser walks the token stream produced by a Lexer one token at a time, holding exactly
// one token of lookahead, and reports diagnostics to a shared Diagnostics accumulator
// rather than returning a Go error from every method.
type Parser struct {
	l     *lexer.Lexer
	diags *diag.Diagnostics

	curToken  token.Token
	peekToken token.Token
}

// New constructs a Parser over l, reporting errors into diags. It primes curToken/peekToken
// so the parser starts positioned at the first token, per the lexer's stateful-cursor
// contract.
func New(l *lexer.Lexer, diags *diag.Diagnostics) *Parser {
	l.SetDiagnostics(diags)
	p := &Parser{l: l, diags: diags}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.diags.Report(diag.Parse, p.curToken.Line, p.curToken.Column, format, args...)
}

// expect reports a diagnostic if curToken doesn't match t, then unconditionally advances
// one token either way — this is the "advance one token and continue" recovery strategy.
func (p *Parser) expect(t token.TokenType) {
	if p.curToken.Type != t {
		p.errorf("expected %s, got %s (%q)", t, p.curToken.Type, p.curToken.Literal)
	}
	p.nextToken()
}

func (p *Parser) overBudget() bool {
	return p.diags.Over(diag.MaxErrors)
}

// ParseProgram consumes the entire token stream, producing one top-level statement per
// iteration, and stops early once the accumulated diagnostic count exceeds diag.MaxErrors.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.curToken.Type != token.EOF {
		if p.overBudget() {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// ----------------------------------------------------------------------------------------------
// STATEMENTS
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.FN:
		return p.parseFunctionDef()
	case token.RN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.OUT:
		return p.parseOutStatement()
	case token.IN:
		return p.parseInputStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.HTTP:
		return p.parseHTTPStatement()
	case token.IDENT:
		return p.parseIdentStatement()
	case token.SEMICOLON:
		tok := p.curToken
		p.nextToken()
		return &ast.EmptyStatement{Token: tok}
	case token.ILLEGAL:
		// The lexer already reported this as a diag.Lex diagnostic; don't double-report
		// it as a parse error too. Advance one token and keep parsing, per spec.md §7's
		// token-level parse-error recovery.
		tok := p.curToken
		p.nextToken()
		return &ast.EmptyStatement{Token: tok}
	default:
		p.errorf("unexpected token %s (%q) at start of statement", p.curToken.Type, p.curToken.Literal)
		tok := p.curToken
		p.nextToken()
		return &ast.EmptyStatement{Token: tok}
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	if p.curToken.Type != token.LBRACE {
		p.errorf("expected '{', got %s", p.curToken.Type)
		return &ast.BlockStatement{Token: p.curToken}
	}
	tok := p.curToken
	p.nextToken()

	var stmts []ast.Statement
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if p.overBudget() {
			break
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return &ast.BlockStatement{Token: tok, Statements: stmts}
}

// parseFunctionDef handles `fn IDENT ( IDENT (, IDENT)* ) block ;`. Registration into the
// function table does not happen here — only at evaluation time (see ast.FunctionDef).
func (p *Parser) parseFunctionDef() ast.Statement {
	tok := p.curToken
	p.nextToken()

	name := p.curToken.Literal
	p.expect(token.IDENT)
	p.expect(token.LPAREN)

	var params []string
	if p.curToken.Type != token.RPAREN {
		for {
			params = append(params, p.curToken.Literal)
			p.expect(token.IDENT)
			if p.curToken.Type == token.COMMA {
				p.nextToken()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	p.expect(token.SEMICOLON)

	return &ast.FunctionDef{Token: tok, Name: name, Params: params, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression()
	p.expect(token.SEMICOLON)
	return &ast.ReturnStatement{Token: tok, Value: val}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.SEMICOLON)
	return &ast.BreakStatement{Token: tok}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.SEMICOLON)
	return &ast.ContinueStatement{Token: tok}
}

func (p *Parser) parseOutStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.LPAREN)
	val := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &ast.OutStatement{Token: tok, Value: val}
}

// parseInputStatement handles both `in ( IDENT ) ;` and `in ( IDENT [ expr ] ) ;`, folding
// the array-element case into a single InputStatement whose Target is an IndexExpression.
func (p *Parser) parseInputStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.LPAREN)

	identTok := p.curToken
	name := p.curToken.Literal
	p.expect(token.IDENT)

	var target ast.Expression = &ast.Identifier{Token: identTok, Value: name}
	if p.curToken.Type == token.LBRACKET {
		lb := p.curToken
		p.nextToken()
		idx := p.parseExpression()
		p.expect(token.RBRACKET)
		target = &ast.IndexExpression{Token: lb, Left: &ast.Identifier{Token: identTok, Value: name}, Index: idx}
	}

	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &ast.InputStatement{Token: tok, Target: target}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseBlock()

	var elseBlock *ast.BlockStatement
	if p.curToken.Type == token.COLON {
		p.nextToken()
		elseBlock = p.parseBlock()
	}
	p.expect(token.SEMICOLON)
	return &ast.IfStatement{Token: tok, Condition: cond, Then: then, Else: elseBlock}
}

// parseForInit handles the optional `IDENT = expr` slot before the first ';' in a for-header.
func (p *Parser) parseForInit() ast.Statement {
	name := p.curToken.Literal
	p.expect(token.IDENT)
	assignTok := p.curToken
	p.expect(token.ASSIGN)
	val := p.parseExpression()
	return &ast.AssignStatement{Token: assignTok, Name: name, Value: val}
}

// parseForPost handles the optional `IDENT (++|--|= expr)` slot after the second ';'.
func (p *Parser) parseForPost() ast.Statement {
	name := p.curToken.Literal
	p.expect(token.IDENT)
	switch p.curToken.Type {
	case token.INCR:
		tok := p.curToken
		p.nextToken()
		return &ast.IncDecStatement{Token: tok, Name: name, Op: token.INCR}
	case token.DECR:
		tok := p.curToken
		p.nextToken()
		return &ast.IncDecStatement{Token: tok, Name: name, Op: token.DECR}
	case token.ASSIGN:
		tok := p.curToken
		p.nextToken()
		val := p.parseExpression()
		return &ast.AssignStatement{Token: tok, Name: name, Value: val}
	default:
		p.errorf("expected ++, --, or = in for-loop post clause, got %s", p.curToken.Type)
		return &ast.EmptyStatement{Token: p.curToken}
	}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.LPAREN)

	var init ast.Statement
	if p.curToken.Type != token.SEMICOLON {
		init = p.parseForInit()
	}
	p.expect(token.SEMICOLON)

	cond := p.parseExpression()
	p.expect(token.SEMICOLON)

	var post ast.Statement
	if p.curToken.Type != token.RPAREN {
		post = p.parseForPost()
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()
	p.expect(token.SEMICOLON)
	return &ast.ForStatement{Token: tok, Init: init, Condition: cond, Post: post, Body: body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	p.expect(token.SEMICOLON)
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

// parseHTTPStatement handles `http ( expr , expr [, expr] ) ;`.
func (p *Parser) parseHTTPStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	p.expect(token.LPAREN)
	method := p.parseExpression()
	p.expect(token.COMMA)
	url := p.parseExpression()

	var body ast.Expression
	if p.curToken.Type == token.COMMA {
		p.nextToken()
		body = p.parseExpression()
	}
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &ast.HTTPStatement{Token: tok, Method: method, URL: url, Body: body}
}

// parseIdentStatement handles the four IDENT-led statement forms: plain assignment,
// indexed assignment, increment, and decrement.
func (p *Parser) parseIdentStatement() ast.Statement {
	nameTok := p.curToken
	name := p.curToken.Literal
	p.nextToken()

	switch p.curToken.Type {
	case token.ASSIGN:
		tok := p.curToken
		p.nextToken()
		val := p.parseExpression()
		p.expect(token.SEMICOLON)
		return &ast.AssignStatement{Token: tok, Name: name, Value: val}
	case token.LBRACKET:
		p.nextToken()
		idx := p.parseExpression()
		p.expect(token.RBRACKET)
		tok := p.curToken
		p.expect(token.ASSIGN)
		val := p.parseExpression()
		p.expect(token.SEMICOLON)
		return &ast.IndexAssignStatement{Token: tok, Name: name, Index: idx, Value: val}
	case token.INCR:
		tok := p.curToken
		p.nextToken()
		p.expect(token.SEMICOLON)
		return &ast.IncDecStatement{Token: tok, Name: name, Op: token.INCR}
	case token.DECR:
		tok := p.curToken
		p.nextToken()
		p.expect(token.SEMICOLON)
		return &ast.IncDecStatement{Token: tok, Name: name, Op: token.DECR}
	default:
		p.errorf("invalid statement after identifier %q: got %s", name, p.curToken.Type)
		return &ast.EmptyStatement{Token: nameTok}
	}
}

// ----------------------------------------------------------------------------------------------
// EXPRESSIONS — precedence ladder, lowest to highest: logical, comparison, additive,
// multiplicative, unary, primary. See spec §4.2: && and || share one non-short-circuit
// left-folding level; this loop evaluates neither operand specially, so both always run
// at evaluation time.
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseExpression() ast.Expression {
	left := p.parseComparison()
	for p.curToken.Type == token.AND || p.curToken.Type == token.OR {
		tok := p.curToken
		op := string(tok.Type)
		p.nextToken()
		right := p.parseComparison()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for isComparisonOp(p.curToken.Type) {
		tok := p.curToken
		op := string(tok.Type)
		p.nextToken()
		right := p.parseAdditive()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func isComparisonOp(t token.TokenType) bool {
	switch t {
	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ, token.GT_EQ:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.curToken.Type == token.PLUS || p.curToken.Type == token.MINUS {
		tok := p.curToken
		op := string(tok.Type)
		p.nextToken()
		right := p.parseMultiplicative()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.curToken.Type == token.STAR || p.curToken.Type == token.SLASH || p.curToken.Type == token.PERCENT {
		tok := p.curToken
		op := string(tok.Type)
		p.nextToken()
		right := p.parseUnary()
		left = &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curToken.Type == token.MINUS || p.curToken.Type == token.BANG {
		tok := p.curToken
		op := string(tok.Type)
		p.nextToken()
		right := p.parseUnary()
		return &ast.PrefixExpression{Token: tok, Operator: op, Right: right}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		tok := p.curToken
		v, _ := strconv.ParseInt(tok.Literal, 10, 32)
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: int32(v)}
	case token.FLOAT:
		tok := p.curToken
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		p.nextToken()
		return &ast.FloatLiteral{Token: tok, Value: v}
	case token.STRING:
		tok := p.curToken
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.IDENT:
		return p.parseIdentExpression()
	case token.TIME:
		tok := p.curToken
		p.nextToken()
		p.expect(token.LPAREN)
		p.expect(token.RPAREN)
		return &ast.TimeExpression{Token: tok}
	case token.ARRAY:
		tok := p.curToken
		p.nextToken()
		p.expect(token.LPAREN)
		size := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.ArrayNew{Token: tok, Size: size}
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	default:
		p.errorf("expected expression, got %s (%q)", p.curToken.Type, p.curToken.Literal)
		tok := p.curToken
		p.nextToken()
		return &ast.IntegerLiteral{Token: tok, Value: 0}
	}
}

// parseIdentExpression disambiguates a bare variable reference from an array access
// (`name[idx]`) or a call (`name(args)`); NaC has no first-class function values, so a
// call's callee is always a bare name, never a general expression.
func (p *Parser) parseIdentExpression() ast.Expression {
	nameTok := p.curToken
	name := p.curToken.Literal
	p.nextToken()

	if p.curToken.Type == token.LBRACKET {
		lb := p.curToken
		p.nextToken()
		idx := p.parseExpression()
		p.expect(token.RBRACKET)
		return &ast.IndexExpression{Token: lb, Left: &ast.Identifier{Token: nameTok, Value: name}, Index: idx}
	}

	if p.curToken.Type == token.LPAREN {
		lp := p.curToken
		p.nextToken()
		var args []ast.Expression
		if p.curToken.Type != token.RPAREN {
			for {
				args = append(args, p.parseExpression())
				if p.curToken.Type == token.COMMA {
					p.nextToken()
					continue
				}
				break
			}
		}
		p.expect(token.RPAREN)
		return &ast.CallExpression{Token: lp, Function: name, Arguments: args}
	}

	return &ast.Identifier{Token: nameTok, Value: name}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()

	var elems []ast.Expression
	if p.curToken.Type != token.RBRACKET {
		for {
			elems = append(elems, p.parseExpression())
			if p.curToken.Type == token.COMMA {
				p.nextToken()
				continue
			}
			break
		}
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}
