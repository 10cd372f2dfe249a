// ==============================================================================================
// FILE: ast/ast.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: Defines the Abstract Syntax Tree node shapes NaC's parser builds and its evaluator
//          walks. Every node carries the token.Token it was parsed from so diagnostics can
//          point at a precise line and column, and implements String() for the debug
//          "nac ast <file>" dump.
// ==============================================================================================

package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/amoghasbhardwaj/nac/token"
)

// Node is the root of every AST type. TokenLiteral exposes the raw source text of the
// token the node was parsed from, used mostly in tests and diagnostics.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is a Node that is executed for effect rather than evaluated for a value.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.Value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node produced by the parser: a flat list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ----------------------------------------------------------------------------------------------
// LITERALS AND SIMPLE EXPRESSIONS
// ----------------------------------------------------------------------------------------------

type IntegerLiteral struct {
	Token token.Token
	Value int32
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// StringLiteral's String() re-quotes the value so a printed AST reads as source code,
// distinct from Token.Literal which holds the already-unescaped text.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// TimeExpression is the zero-argument time() call; it is its own node kind rather than a
// CallExpression because it takes no arguments and never dispatches through the builtin table.
type TimeExpression struct {
	Token token.Token
}

func (t *TimeExpression) expressionNode()      {}
func (t *TimeExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TimeExpression) String() string       { return "time()" }

// ArrayLiteral is an explicit [e0, e1, ...] literal.
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	elems := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ArrayNew is array(n): a fixed-size array of n zero Ints. Kept distinct from ArrayLiteral
// because it sizes and fills an array rather than listing its elements.
type ArrayNew struct {
	Token token.Token // the 'array' token
	Size  Expression
}

func (an *ArrayNew) expressionNode()      {}
func (an *ArrayNew) TokenLiteral() string { return an.Token.Literal }
func (an *ArrayNew) String() string       { return "array(" + an.Size.String() + ")" }

type IndexExpression struct {
	Token token.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// CallExpression invokes either a user-defined function or a builtin by name; NaC has no
// first-class function values, so the callee is always a bare identifier, not an Expression.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  string
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Function + "(" + strings.Join(args, ", ") + ")"
}

// ----------------------------------------------------------------------------------------------
// STATEMENTS
// ----------------------------------------------------------------------------------------------

type BlockStatement struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, s := range bs.Statements {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// FunctionDef declares fn name(p0, p1, ...) { ... }. Registration into the evaluator's
// function table happens when this node is evaluated, not when it is parsed, so that
// ParseProgram() stays a single idiomatic pass while call sites still may not forward-
// reference a function defined later in the same program (spec's no-forward-reference rule
// is enforced by the evaluator walking the program top to bottom).
type FunctionDef struct {
	Token  token.Token // the 'fn' token
	Name   string
	Params []string
	Body   *BlockStatement
}

func (fd *FunctionDef) statementNode()       {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDef) String() string {
	return "fn " + fd.Name + "(" + strings.Join(fd.Params, ", ") + ") " + fd.Body.String()
}

type ReturnStatement struct {
	Token token.Token // the 'rn' token
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string       { return "rn " + rs.Value.String() + ";" }

type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) String() string       { return "break;" }

type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) String() string       { return "continue;" }

type OutStatement struct {
	Token token.Token // the 'out' token
	Value Expression
}

func (os *OutStatement) statementNode()       {}
func (os *OutStatement) TokenLiteral() string { return os.Token.Literal }
func (os *OutStatement) String() string       { return "out(" + os.Value.String() + ");" }

// InputStatement models in(name) and in(arr[idx]). Target generalizes
// original_source/nac.c's sentinel-variable lowering into a clean AST shape: it is always
// either an *Identifier or an *IndexExpression, never any other Expression.
type InputStatement struct {
	Token  token.Token // the 'in' token
	Target Expression
}

func (is *InputStatement) statementNode()       {}
func (is *InputStatement) TokenLiteral() string { return is.Token.Literal }
func (is *InputStatement) String() string       { return "in(" + is.Target.String() + ");" }

type IfStatement struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      *BlockStatement
	Else      *BlockStatement // nil when there is no ':' else block
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if(")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" : ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// ForStatement's Init and Post slots hold whatever the grammar allows there: Init is an
// AssignStatement, Post an AssignStatement or an IncDecStatement (the parser leaves an
// EmptyStatement in Post after a malformed post clause). The fields are typed as plain
// Statement, and the evaluator runs whichever statement is present through evalStatement.
type ForStatement struct {
	Token     token.Token // the 'for' token
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for(")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	}
	out.WriteString(" ")
	out.WriteString(fs.Condition.String())
	out.WriteString("; ")
	if fs.Post != nil {
		out.WriteString(fs.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while(" + ws.Condition.String() + ") " + ws.Body.String()
}

// HTTPStatement issues a blocking HTTP request. Body is nil for requests that carry none.
type HTTPStatement struct {
	Token  token.Token // the 'http' token
	Method Expression
	URL    Expression
	Body   Expression
}

func (hs *HTTPStatement) statementNode()       {}
func (hs *HTTPStatement) TokenLiteral() string { return hs.Token.Literal }
func (hs *HTTPStatement) String() string {
	var out bytes.Buffer
	out.WriteString("http(")
	out.WriteString(hs.Method.String())
	out.WriteString(", ")
	out.WriteString(hs.URL.String())
	if hs.Body != nil {
		out.WriteString(", ")
		out.WriteString(hs.Body.String())
	}
	out.WriteString(");")
	return out.String()
}

type AssignStatement struct {
	Token token.Token // the '=' token
	Name  string
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	return as.Name + " = " + as.Value.String() + ";"
}

// IndexAssignStatement is name[index] = value;. Kept distinct from AssignStatement because
// it mutates one element of the array bound to Name rather than rebinding Name itself.
type IndexAssignStatement struct {
	Token token.Token // the '=' token
	Name  string
	Index Expression
	Value Expression
}

func (ias *IndexAssignStatement) statementNode()       {}
func (ias *IndexAssignStatement) TokenLiteral() string { return ias.Token.Literal }
func (ias *IndexAssignStatement) String() string {
	return ias.Name + "[" + ias.Index.String() + "] = " + ias.Value.String() + ";"
}

// IncDecStatement is name++; or name--;. Op is always token.INCR or token.DECR.
type IncDecStatement struct {
	Token token.Token
	Name  string
	Op    token.TokenType
}

func (ids *IncDecStatement) statementNode()       {}
func (ids *IncDecStatement) TokenLiteral() string { return ids.Token.Literal }
func (ids *IncDecStatement) String() string       { return ids.Name + string(ids.Op) + ";" }

// EmptyStatement is a bare ';' with no effect, accepted by the grammar but evaluated as a
// no-op.
type EmptyStatement struct {
	Token token.Token
}

func (es *EmptyStatement) statementNode()       {}
func (es *EmptyStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EmptyStatement) String() string       { return ";" }
