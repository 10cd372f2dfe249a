// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Walks the AST and executes it. Adapted from the teacher's Eval(node, env)
//          object.Object design, but replaces its wrapped-object ReturnValue/Error threading
//          with the boolean-flag Interpreter the original language itself uses: returning/
//          breaking/continuing are fields on the Interpreter, set by the statement that
//          triggers them and consumed by the nearest enclosing block/loop/call boundary.
// ==============================================================================================

package evaluator

import (
	"bufio"
	"fmt"
	"io"

	"github.com/amoghasbhardwaj/nac/ast"
	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/token"
	"github.com/amoghasbhardwaj/nac/value"
)

// Resource limits enforced at registration/call time (spec §6).
const (
	MaxCallDepth = 100
	MaxFuncs     = 100
	MaxParams    = 10
)

// Interpreter walks a Program, holding the single Environment plus the control-flow signal
// flags that stand in for the teacher's wrapped-return-value approach. returning/breaking/
// continuing are cleared by whichever construct is entitled to consume them.
type Interpreter struct {
	Env   *value.Environment
	Diags *diag.Diagnostics
	Funcs map[string]*ast.FunctionDef

	Stdin  io.Reader
	Stdout io.Writer

	stdinReader *bufio.Reader

	returning   bool
	breaking    bool
	continuing  bool
	returnValue value.Value
}

// New builds an Interpreter with a fresh global Environment and an empty function table.
// stdin is wrapped in a single, persistent bufio.Reader so that repeated in() statements
// keep resuming from the bytes left over by the previous read, rather than each buffering
// (and dropping) a fresh chunk of the stream.
func New(diags *diag.Diagnostics, stdin io.Reader, stdout io.Writer) *Interpreter {
	return &Interpreter{
		Env:         value.NewEnvironment(),
		Diags:       diags,
		Funcs:       make(map[string]*ast.FunctionDef),
		Stdin:       stdin,
		Stdout:      stdout,
		stdinReader: bufio.NewReader(stdin),
	}
}

func (it *Interpreter) errorf(line, column int, format string, args ...any) {
	it.Diags.Report(diag.Eval, line, column, format, args...)
}

func (it *Interpreter) overBudget() bool {
	return it.Diags.Over(diag.MaxErrors)
}

// Run executes every top-level statement in order, stopping early once the accumulated
// error count passes MaxErrors (spec §7).
func (it *Interpreter) Run(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if it.overBudget() {
			return
		}
		it.evalStatement(stmt)
	}
}

// ------------------------------------------------------------------------------------------
// STATEMENTS
// ------------------------------------------------------------------------------------------

func (it *Interpreter) evalStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		it.registerFunction(s)
	case *ast.AssignStatement:
		val := it.evalExpression(s.Value)
		it.Env.Set(s.Name, val)
	case *ast.IndexAssignStatement:
		it.evalIndexAssign(s)
	case *ast.IncDecStatement:
		it.evalIncDec(s)
	case *ast.ReturnStatement:
		val := it.evalExpression(s.Value)
		it.returnValue = value.Copy(val) // deep copy: arrays must survive frame teardown
		it.returning = true
	case *ast.BreakStatement:
		it.breaking = true
	case *ast.ContinueStatement:
		it.continuing = true
	case *ast.OutStatement:
		val := it.evalExpression(s.Value)
		fmt.Fprintln(it.Stdout, val.Inspect())
	case *ast.InputStatement:
		it.evalInput(s)
	case *ast.IfStatement:
		it.evalIf(s)
	case *ast.ForStatement:
		it.evalFor(s)
	case *ast.WhileStatement:
		it.evalWhile(s)
	case *ast.HTTPStatement:
		it.evalHTTP(s)
	case *ast.BlockStatement:
		it.evalBlock(s)
	case *ast.EmptyStatement:
		// no-op
	default:
		it.errorf(0, 0, "unsupported statement %T", stmt)
	}
}

// evalBlock runs every statement in b in order, stopping as soon as any control-flow signal
// becomes active (return/break/continue) or the error budget is exhausted, leaving the
// signal for the nearest construct entitled to consume it.
func (it *Interpreter) evalBlock(b *ast.BlockStatement) {
	for _, stmt := range b.Statements {
		if it.overBudget() {
			return
		}
		it.evalStatement(stmt)
		if it.returning || it.breaking || it.continuing {
			return
		}
	}
}

// registerFunction adds fd to the function table, enforcing MaxFuncs and MaxParams. A
// function that would overflow either limit is reported and skipped rather than crashing
// the run — later calls to it then fail as "undefined function".
func (it *Interpreter) registerFunction(fd *ast.FunctionDef) {
	if len(fd.Params) > MaxParams {
		it.errorf(fd.Token.Line, fd.Token.Column, "function %s declares more than %d parameters", fd.Name, MaxParams)
		return
	}
	if _, exists := it.Funcs[fd.Name]; !exists && len(it.Funcs) >= MaxFuncs {
		it.errorf(fd.Token.Line, fd.Token.Column, "too many function definitions (max %d)", MaxFuncs)
		return
	}
	it.Funcs[fd.Name] = fd
}

func (it *Interpreter) evalIf(s *ast.IfStatement) {
	cond := it.evalExpression(s.Condition)
	if value.ToBool(cond) {
		it.evalBlock(s.Then)
	} else if s.Else != nil {
		it.evalBlock(s.Else)
	}
}

// evalFor mirrors original_source/nac.c's AST_FOR case exactly: continuing is reset right
// before the body runs each iteration (not after), breaking clears itself and stops the
// loop, an active return stops the loop without touching the post-statement, and the
// post-statement only runs when the body fell through normally.
func (it *Interpreter) evalFor(s *ast.ForStatement) {
	if s.Init != nil {
		it.evalStatement(s.Init)
	}
	for {
		if it.overBudget() {
			return
		}
		cond := it.evalExpression(s.Condition)
		if !value.ToBool(cond) {
			break
		}
		it.continuing = false
		it.evalBlock(s.Body)
		if it.breaking {
			it.breaking = false
			break
		}
		if it.returning {
			break
		}
		if s.Post != nil {
			it.evalStatement(s.Post)
		}
	}
	it.continuing = false
}

func (it *Interpreter) evalWhile(s *ast.WhileStatement) {
	for {
		if it.overBudget() {
			return
		}
		cond := it.evalExpression(s.Condition)
		if !value.ToBool(cond) {
			break
		}
		it.continuing = false
		it.evalBlock(s.Body)
		if it.breaking {
			it.breaking = false
			break
		}
		if it.returning {
			break
		}
	}
	it.continuing = false
}

// evalHTTP validates method/url as strings, silently drops a non-string body, and always
// leaves no result behind — matching http_request_unix, which never surfaces the response
// body as a program value, only ever printing it to stdout.
func (it *Interpreter) evalHTTP(s *ast.HTTPStatement) {
	methodVal := it.evalExpression(s.Method)
	urlVal := it.evalExpression(s.URL)

	method, methodOK := methodVal.(*value.Str)
	url, urlOK := urlVal.(*value.Str)
	if !methodOK || !urlOK {
		it.errorf(s.Token.Line, s.Token.Column, "http() requires string arguments")
		return
	}

	var body string
	hasBody := false
	if s.Body != nil {
		bodyVal := it.evalExpression(s.Body)
		if str, ok := bodyVal.(*value.Str); ok {
			body = str.Value
			hasBody = true
		}
	}

	doHTTPRequest(it, s.Token.Line, s.Token.Column, method.Value, url.Value, body, hasBody)
}

// evalIndexAssign mirrors original_source/nac.c's array-assignment ordering: look the array
// variable up (error if missing or non-array), evaluate the index and bounds-check it, then
// evaluate the value expression and write it in, deep-copying so the array slot never
// aliases whatever produced the value.
func (it *Interpreter) evalIndexAssign(s *ast.IndexAssignStatement) {
	arrVal, ok := it.Env.Get(s.Name)
	if !ok {
		it.errorf(s.Token.Line, s.Token.Column, "undefined variable: %s", s.Name)
		return
	}
	arr, ok := arrVal.(*value.Array)
	if !ok {
		it.errorf(s.Token.Line, s.Token.Column, "%s is not an array", s.Name)
		return
	}

	idxVal := it.evalExpression(s.Index)
	idx := int(value.ToInt(idxVal))
	if idx < 0 || idx >= len(arr.Elements) {
		it.errorf(s.Token.Line, s.Token.Column, "array index out of range: %d", idx)
		return
	}

	newVal := it.evalExpression(s.Value)
	arr.Elements[idx] = value.Copy(newVal)
	it.Env.Set(s.Name, arr)
}

// evalIncDec is tag-preserving: a Float variable stays a Float after ++/--, anything else
// coerces to Int first (matching original_source/nac.c's AST_INCREMENT/AST_DECREMENT cases).
func (it *Interpreter) evalIncDec(s *ast.IncDecStatement) {
	cur, ok := it.Env.Get(s.Name)
	if !ok {
		it.errorf(s.Token.Line, s.Token.Column, "undefined variable: %s", s.Name)
		return
	}
	delta, deltaF := int32(1), 1.0
	if s.Op == token.DECR {
		delta, deltaF = -1, -1.0
	}
	if f, ok := cur.(*value.Float); ok {
		it.Env.Set(s.Name, &value.Float{Value: f.Value + deltaF})
		return
	}
	it.Env.Set(s.Name, &value.Int{Value: value.ToInt(cur) + delta})
}

// evalInput reads one line of stdin, attempting Int then Float then falling back to string
// (matching original_source/nac.c's AST_IN strtol/strtod cascade), and writes it to Target.
func (it *Interpreter) evalInput(s *ast.InputStatement) {
	line, ok := readLine(it.stdinReader)
	if !ok {
		return
	}
	it.assignInputTarget(s.Target, parseInputLine(line))
}

func (it *Interpreter) assignInputTarget(target ast.Expression, val value.Value) {
	switch t := target.(type) {
	case *ast.Identifier:
		it.Env.Set(t.Value, val)
	case *ast.IndexExpression:
		name, ok := t.Left.(*ast.Identifier)
		if !ok {
			return
		}
		arrVal, ok := it.Env.Get(name.Value)
		if !ok {
			return
		}
		arr, ok := arrVal.(*value.Array)
		if !ok {
			return
		}
		idx := int(value.ToInt(it.evalExpression(t.Index)))
		if idx < 0 || idx >= len(arr.Elements) {
			return
		}
		arr.Elements[idx] = value.Copy(val)
		it.Env.Set(name.Value, arr)
	}
}

// ------------------------------------------------------------------------------------------
// EXPRESSIONS
// ------------------------------------------------------------------------------------------

func (it *Interpreter) evalExpression(expr ast.Expression) value.Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &value.Int{Value: e.Value}
	case *ast.FloatLiteral:
		return &value.Float{Value: e.Value}
	case *ast.StringLiteral:
		return value.NewString(e.Value)
	case *ast.Identifier:
		v, ok := it.Env.Get(e.Value)
		if !ok {
			it.errorf(e.Token.Line, e.Token.Column, "undefined variable: %s", e.Value)
			return value.NewInt0()
		}
		return v
	case *ast.TimeExpression:
		return &value.Int{Value: currentUnixSeconds()}
	case *ast.ArrayLiteral:
		return it.evalArrayLiteral(e)
	case *ast.ArrayNew:
		return it.evalArrayNew(e)
	case *ast.IndexExpression:
		return it.evalIndexExpression(e)
	case *ast.PrefixExpression:
		return it.evalPrefix(e)
	case *ast.InfixExpression:
		return it.evalInfix(e)
	case *ast.CallExpression:
		return it.evalCall(e)
	default:
		it.errorf(0, 0, "unsupported expression %T", expr)
		return value.NewInt0()
	}
}

func (it *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral) value.Value {
	elems := make([]value.Value, 0, len(e.Elements))
	for _, el := range e.Elements {
		if len(elems) >= value.MaxArraySize {
			it.errorf(e.Token.Line, e.Token.Column, "array literal exceeds max size %d", value.MaxArraySize)
			break
		}
		elems = append(elems, value.Copy(it.evalExpression(el)))
	}
	return &value.Array{Elements: elems}
}

func (it *Interpreter) evalArrayNew(e *ast.ArrayNew) value.Value {
	sizeVal := it.evalExpression(e.Size)
	size := int(value.ToInt(sizeVal))
	if size < 0 {
		size = 0
	}
	if size > value.MaxArraySize {
		it.errorf(e.Token.Line, e.Token.Column, "array(%d) exceeds max size %d", size, value.MaxArraySize)
		size = value.MaxArraySize
	}
	elems := make([]value.Value, size)
	for i := range elems {
		elems[i] = &value.Int{Value: 0}
	}
	return &value.Array{Elements: elems}
}

// evalIndexExpression mirrors original_source/nac.c's array-read ordering: undefined-
// variable error, then non-array-type error, then index evaluation and bounds check, with
// Int(0) as the dummy result on every failure path.
func (it *Interpreter) evalIndexExpression(e *ast.IndexExpression) value.Value {
	name, ok := e.Left.(*ast.Identifier)
	if !ok {
		it.errorf(e.Token.Line, e.Token.Column, "index target must be a variable")
		return value.NewInt0()
	}
	arrVal, ok := it.Env.Get(name.Value)
	if !ok {
		it.errorf(e.Token.Line, e.Token.Column, "undefined variable: %s", name.Value)
		return value.NewInt0()
	}
	arr, ok := arrVal.(*value.Array)
	if !ok {
		it.errorf(e.Token.Line, e.Token.Column, "%s is not an array", name.Value)
		return value.NewInt0()
	}
	idx := int(value.ToInt(it.evalExpression(e.Index)))
	if idx < 0 || idx >= len(arr.Elements) {
		it.errorf(e.Token.Line, e.Token.Column, "array index out of range: %d", idx)
		return value.NewInt0()
	}
	return value.Copy(arr.Elements[idx])
}

// evalPrefix implements - and !. Unary minus keeps its operand's Float-ness; ! always
// yields an Int(0|1), matching original_source/nac.c's to_bool-based negation.
func (it *Interpreter) evalPrefix(e *ast.PrefixExpression) value.Value {
	right := it.evalExpression(e.Right)
	switch e.Operator {
	case "-":
		if f, ok := right.(*value.Float); ok {
			return &value.Float{Value: -f.Value}
		}
		return &value.Int{Value: -value.ToInt(right)}
	case "!":
		return boolToInt(!value.ToBool(right))
	default:
		it.errorf(e.Token.Line, e.Token.Column, "unknown prefix operator: %s", e.Operator)
		return value.NewInt0()
	}
}

// evalInfix implements all thirteen binary operators, following
// original_source/nac.c's AST_BINARY_OP case operator-for-operator: + is string
// concatenation when either side is a string, otherwise float-wide arithmetic when either
// side is a Float, else plain Int arithmetic; / and % both guard against a zero divisor;
// comparisons always coerce both sides to float; && and || evaluate both operands eagerly
// (there is no short-circuiting) and yield Int(0|1).
func (it *Interpreter) evalInfix(e *ast.InfixExpression) value.Value {
	left := it.evalExpression(e.Left)
	right := it.evalExpression(e.Right)

	switch e.Operator {
	case "+":
		_, lStr := left.(*value.Str)
		_, rStr := right.(*value.Str)
		if lStr || rStr {
			return value.NewString(value.StringifyForConcat(left) + value.StringifyForConcat(right))
		}
		if isFloatWide(left, right) {
			return &value.Float{Value: value.ToFloat(left) + value.ToFloat(right)}
		}
		return &value.Int{Value: value.ToInt(left) + value.ToInt(right)}
	case "-":
		if isFloatWide(left, right) {
			return &value.Float{Value: value.ToFloat(left) - value.ToFloat(right)}
		}
		return &value.Int{Value: value.ToInt(left) - value.ToInt(right)}
	case "*":
		if isFloatWide(left, right) {
			return &value.Float{Value: value.ToFloat(left) * value.ToFloat(right)}
		}
		return &value.Int{Value: value.ToInt(left) * value.ToInt(right)}
	case "/":
		if value.ToFloat(right) == 0 {
			it.errorf(e.Token.Line, e.Token.Column, "division by zero")
			return value.NewInt0()
		}
		if isFloatWide(left, right) {
			return &value.Float{Value: value.ToFloat(left) / value.ToFloat(right)}
		}
		return &value.Int{Value: value.ToInt(left) / value.ToInt(right)}
	case "%":
		if value.ToInt(right) == 0 {
			it.errorf(e.Token.Line, e.Token.Column, "modulo by zero")
			return value.NewInt0()
		}
		return &value.Int{Value: value.ToInt(left) % value.ToInt(right)}
	case "==":
		return boolToInt(value.ToFloat(left) == value.ToFloat(right))
	case "!=":
		return boolToInt(value.ToFloat(left) != value.ToFloat(right))
	case "<":
		return boolToInt(value.ToFloat(left) < value.ToFloat(right))
	case ">":
		return boolToInt(value.ToFloat(left) > value.ToFloat(right))
	case "<=":
		return boolToInt(value.ToFloat(left) <= value.ToFloat(right))
	case ">=":
		return boolToInt(value.ToFloat(left) >= value.ToFloat(right))
	case "&&":
		return boolToInt(value.ToBool(left) && value.ToBool(right))
	case "||":
		return boolToInt(value.ToBool(left) || value.ToBool(right))
	default:
		it.errorf(e.Token.Line, e.Token.Column, "unknown infix operator: %s", e.Operator)
		return value.NewInt0()
	}
}

func isFloatWide(a, b value.Value) bool {
	_, aFloat := a.(*value.Float)
	_, bFloat := b.(*value.Float)
	return aFloat || bFloat
}

func boolToInt(b bool) *value.Int {
	if b {
		return &value.Int{Value: 1}
	}
	return &value.Int{Value: 0}
}

// evalCall implements the full call sequence from original_source/nac.c's AST_CALL case:
// arguments are evaluated in the caller's environment first; builtins dispatch before any
// user function is looked up and never push a frame; a user call then checks arity and
// MaxCallDepth, pushes a frame, binds parameters, runs the body, captures and clears the
// return signal, and pops the frame — restoring the caller's view of the world exactly as
// it was before the call.
func (it *Interpreter) evalCall(e *ast.CallExpression) value.Value {
	args := make([]value.Value, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = it.evalExpression(a)
	}

	if isBuiltin(e.Function) {
		return callBuiltin(it, e.Token.Line, e.Token.Column, e.Function, args)
	}

	fn, ok := it.Funcs[e.Function]
	if !ok {
		it.errorf(e.Token.Line, e.Token.Column, "undefined function: %s", e.Function)
		return value.NewInt0()
	}
	if len(args) != len(fn.Params) {
		it.errorf(e.Token.Line, e.Token.Column, "%s expects %d arguments, got %d", e.Function, len(fn.Params), len(args))
		return value.NewInt0()
	}
	if it.Env.FrameDepth() >= MaxCallDepth {
		it.errorf(e.Token.Line, e.Token.Column, "call depth exceeded %d", MaxCallDepth)
		return value.NewInt0()
	}

	it.Env.PushFrame()
	for i, param := range fn.Params {
		it.Env.Set(param, args[i])
	}
	it.evalBlock(fn.Body)

	var ret value.Value = value.NewInt0()
	if it.returning {
		ret = it.returnValue
	}
	it.returning = false
	it.breaking = false
	it.continuing = false
	it.returnValue = nil
	it.Env.PopFrame()
	return ret
}
