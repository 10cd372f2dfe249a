// ==============================================================================================
// FILE: evaluator/builtins.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: The fixed table of built-in functions (spec §5) — math, string, array, and file
//          I/O — plus the time() expression and http() statement support code. Grounded
//          operator-for-operator on original_source/nac.c's call_builtin_function and its
//          http_request_unix, which this package's doHTTPRequest generalizes to use Go's
//          net/http instead of shelling out to curl.
// ==============================================================================================

package evaluator

import (
	"bufio"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amoghasbhardwaj/nac/value"
)

// builtinNames is the closed set of built-in function names, matching
// original_source/nac.c's is_builtin_function table exactly. time() and http() are
// handled as distinct AST node kinds, not through this table, since neither one is an
// ordinary CallExpression in the grammar.
var builtinNames = map[string]bool{
	"sqrt": true, "pow": true, "sin": true, "cos": true, "tan": true,
	"abs": true, "floor": true, "ceil": true, "round": true, "log": true, "exp": true,
	"length": true, "upper": true, "lower": true, "push": true, "pop": true,
	"trim": true, "replace": true, "substr": true, "indexOf": true,
	"first": true, "last": true, "reverse": true, "slice": true, "join": true,
	"read": true, "write": true, "append": true,
}

func isBuiltin(name string) bool {
	return builtinNames[name]
}

// callBuiltin dispatches name against args, reporting and returning a dummy value on any
// arity or type mismatch instead of aborting the run — matching call_builtin_function's
// report_error-then-return-dummy pattern throughout.
func callBuiltin(it *Interpreter, line, column int, name string, args []value.Value) value.Value {
	switch name {
	case "sqrt":
		return builtinSqrt(it, line, column, args)
	case "pow":
		return builtinPow(it, line, column, args)
	case "sin":
		return builtinUnaryMath(it, line, column, "sin", args, math.Sin)
	case "cos":
		return builtinUnaryMath(it, line, column, "cos", args, math.Cos)
	case "tan":
		return builtinUnaryMath(it, line, column, "tan", args, math.Tan)
	case "abs":
		return builtinAbs(it, line, column, args)
	case "floor":
		return builtinUnaryMath(it, line, column, "floor", args, math.Floor)
	case "ceil":
		return builtinUnaryMath(it, line, column, "ceil", args, math.Ceil)
	case "round":
		return builtinUnaryMath(it, line, column, "round", args, math.Round)
	case "log":
		return builtinLog(it, line, column, args)
	case "exp":
		return builtinUnaryMath(it, line, column, "exp", args, math.Exp)
	case "length":
		return builtinLength(it, line, column, args)
	case "upper":
		return builtinCase(it, line, column, "upper", args, strings.ToUpper)
	case "lower":
		return builtinCase(it, line, column, "lower", args, strings.ToLower)
	case "trim":
		return builtinTrim(it, line, column, args)
	case "replace":
		return builtinReplace(it, line, column, args)
	case "substr":
		return builtinSubstr(it, line, column, args)
	case "indexOf":
		return builtinIndexOf(it, line, column, args)
	case "first":
		return builtinFirst(it, line, column, args)
	case "last":
		return builtinLast(it, line, column, args)
	case "reverse":
		return builtinReverse(it, line, column, args)
	case "slice":
		return builtinSlice(it, line, column, args)
	case "join":
		return builtinJoin(it, line, column, args)
	case "push":
		return builtinPush(it, line, column, args)
	case "pop":
		return builtinPop(it, line, column, args)
	case "read":
		return builtinRead(it, line, column, args)
	case "write":
		return builtinWrite(it, line, column, args)
	case "append":
		return builtinAppend(it, line, column, args)
	default:
		it.errorf(line, column, "unknown built-in function: %s", name)
		return value.NewInt0()
	}
}

// ------------------------------------------------------------------------------------------
// MATH
// ------------------------------------------------------------------------------------------

func builtinUnaryMath(it *Interpreter, line, column int, name string, args []value.Value, fn func(float64) float64) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "%s() requires 1 argument", name)
		return &value.Float{Value: 0}
	}
	return &value.Float{Value: fn(value.ToFloat(args[0]))}
}

func builtinSqrt(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "sqrt() requires 1 argument")
		return &value.Float{Value: 0}
	}
	v := value.ToFloat(args[0])
	if v < 0 {
		it.errorf(line, column, "sqrt() of negative number")
		return &value.Float{Value: 0}
	}
	return &value.Float{Value: math.Sqrt(v)}
}

func builtinPow(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 2 {
		it.errorf(line, column, "pow() requires 2 arguments")
		return &value.Float{Value: 0}
	}
	return &value.Float{Value: math.Pow(value.ToFloat(args[0]), value.ToFloat(args[1]))}
}

// builtinAbs is tag-preserving: an Int argument yields an Int result, everything else
// yields Float — matching call_builtin_function's args[0].type == TYPE_INT check.
func builtinAbs(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "abs() requires 1 argument")
		return &value.Float{Value: 0}
	}
	if i, ok := args[0].(*value.Int); ok {
		n := i.Value
		if n < 0 {
			n = -n
		}
		return &value.Int{Value: n}
	}
	return &value.Float{Value: math.Abs(value.ToFloat(args[0]))}
}

func builtinLog(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "log() requires 1 argument")
		return &value.Float{Value: 0}
	}
	v := value.ToFloat(args[0])
	if v <= 0 {
		it.errorf(line, column, "log() of non-positive number")
		return &value.Float{Value: 0}
	}
	return &value.Float{Value: math.Log(v)}
}

// ------------------------------------------------------------------------------------------
// STRING
// ------------------------------------------------------------------------------------------

func builtinLength(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "length() requires 1 argument")
		return value.NewInt0()
	}
	switch v := args[0].(type) {
	case *value.Str:
		return &value.Int{Value: int32(len(v.Value))}
	case *value.Array:
		return &value.Int{Value: int32(len(v.Elements))}
	default:
		return value.NewInt0()
	}
}

func builtinCase(it *Interpreter, line, column int, name string, args []value.Value, fn func(string) string) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "%s() requires 1 argument", name)
		return value.NewString("")
	}
	s, ok := args[0].(*value.Str)
	if !ok {
		it.errorf(line, column, "%s() requires a string", name)
		return value.NewString("")
	}
	return value.NewString(fn(s.Value))
}

func builtinTrim(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "trim() requires 1 argument")
		return value.NewString("")
	}
	s, ok := args[0].(*value.Str)
	if !ok {
		it.errorf(line, column, "trim() requires a string")
		return value.NewString("")
	}
	return value.NewString(strings.TrimSpace(s.Value))
}

func builtinReplace(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 3 {
		it.errorf(line, column, "replace() requires 3 arguments (string, old, new)")
		return value.NewString("")
	}
	str, ok1 := args[0].(*value.Str)
	old, ok2 := args[1].(*value.Str)
	replacement, ok3 := args[2].(*value.Str)
	if !ok1 || !ok2 || !ok3 {
		it.errorf(line, column, "replace() requires string arguments")
		return value.NewString("")
	}
	return value.NewString(strings.ReplaceAll(str.Value, old.Value, replacement.Value))
}

func builtinSubstr(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 3 {
		it.errorf(line, column, "substr() requires 3 arguments (string, start, length)")
		return value.NewString("")
	}
	str, ok := args[0].(*value.Str)
	if !ok {
		it.errorf(line, column, "substr() requires a string as first argument")
		return value.NewString("")
	}
	start := int(value.ToInt(args[1]))
	length := int(value.ToInt(args[2]))
	strLen := len(str.Value)
	if start < 0 || start >= strLen || length < 0 {
		return value.NewString("")
	}
	if start+length > strLen {
		length = strLen - start
	}
	return value.NewString(str.Value[start : start+length])
}

func builtinIndexOf(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 2 {
		it.errorf(line, column, "indexOf() requires 2 arguments (string, substring)")
		return &value.Int{Value: -1}
	}
	str, ok1 := args[0].(*value.Str)
	sub, ok2 := args[1].(*value.Str)
	if !ok1 || !ok2 {
		it.errorf(line, column, "indexOf() requires string arguments")
		return &value.Int{Value: -1}
	}
	return &value.Int{Value: int32(strings.Index(str.Value, sub.Value))}
}

// ------------------------------------------------------------------------------------------
// ARRAY
// ------------------------------------------------------------------------------------------

func builtinFirst(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "first() requires 1 argument")
		return value.NewInt0()
	}
	arr, ok := args[0].(*value.Array)
	if !ok || len(arr.Elements) == 0 {
		it.errorf(line, column, "first() on non-array or empty array")
		return value.NewInt0()
	}
	return value.Copy(arr.Elements[0])
}

func builtinLast(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "last() requires 1 argument")
		return value.NewInt0()
	}
	arr, ok := args[0].(*value.Array)
	if !ok || len(arr.Elements) == 0 {
		it.errorf(line, column, "last() on non-array or empty array")
		return value.NewInt0()
	}
	return value.Copy(arr.Elements[len(arr.Elements)-1])
}

func builtinReverse(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "reverse() requires 1 argument")
		return &value.Array{}
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		it.errorf(line, column, "reverse() requires an array")
		return &value.Array{}
	}
	out := make([]value.Value, len(arr.Elements))
	for i, el := range arr.Elements {
		out[len(out)-1-i] = value.Copy(el)
	}
	return &value.Array{Elements: out}
}

func builtinSlice(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 3 {
		it.errorf(line, column, "slice() requires 3 arguments (array, start, end)")
		return &value.Array{}
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		it.errorf(line, column, "slice() requires an array")
		return &value.Array{}
	}
	start := int(value.ToInt(args[1]))
	end := int(value.ToInt(args[2]))
	size := len(arr.Elements)
	if start < 0 {
		start = 0
	}
	if end > size {
		end = size
	}
	if start > end {
		start = end
	}
	out := make([]value.Value, end-start)
	for i := range out {
		out[i] = value.Copy(arr.Elements[start+i])
	}
	return &value.Array{Elements: out}
}

func builtinJoin(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 2 {
		it.errorf(line, column, "join() requires 2 arguments (array, separator)")
		return value.NewString("")
	}
	arr, ok1 := args[0].(*value.Array)
	sep, ok2 := args[1].(*value.Str)
	if !ok1 || !ok2 {
		it.errorf(line, column, "join() requires an array and string separator")
		return value.NewString("")
	}
	parts := make([]string, len(arr.Elements))
	for i, el := range arr.Elements {
		parts[i] = value.FormatForJoin(el)
	}
	return value.NewString(strings.Join(parts, sep.Value))
}

// builtinPush matches original_source/nac.c's stubbed push(): it never mutates the array
// in place (arrays are passed as evaluated values, not references) and simply reports the
// argument array's current size.
func builtinPush(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 2 {
		it.errorf(line, column, "push() requires 2 arguments (array, value)")
		return value.NewInt0()
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		it.errorf(line, column, "push() requires an array")
		return value.NewInt0()
	}
	return &value.Int{Value: int32(len(arr.Elements))}
}

func builtinPop(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "pop() requires 1 argument")
		return value.NewInt0()
	}
	arr, ok := args[0].(*value.Array)
	if !ok || len(arr.Elements) == 0 {
		it.errorf(line, column, "pop() on empty array")
		return value.NewInt0()
	}
	return value.Copy(arr.Elements[len(arr.Elements)-1])
}

// ------------------------------------------------------------------------------------------
// FILE I/O
// ------------------------------------------------------------------------------------------

func builtinRead(it *Interpreter, line, column int, args []value.Value) value.Value {
	if len(args) != 1 {
		it.errorf(line, column, "read() requires 1 argument (filename)")
		return value.NewString("")
	}
	name, ok := args[0].(*value.Str)
	if !ok {
		it.errorf(line, column, "read() requires a string filename")
		return value.NewString("")
	}
	data, err := os.ReadFile(name.Value)
	if err != nil {
		it.errorf(line, column, "cannot open file for reading: %s", name.Value)
		return value.NewString("")
	}
	return value.NewString(string(data))
}

func builtinWrite(it *Interpreter, line, column int, args []value.Value) value.Value {
	return fileWriteOrAppend(it, line, column, "write", args, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func builtinAppend(it *Interpreter, line, column int, args []value.Value) value.Value {
	return fileWriteOrAppend(it, line, column, "append", args, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func fileWriteOrAppend(it *Interpreter, line, column int, name string, args []value.Value, flag int) value.Value {
	if len(args) != 2 {
		it.errorf(line, column, "%s() requires 2 arguments (filename, content)", name)
		return value.NewInt0()
	}
	filename, ok := args[0].(*value.Str)
	if !ok {
		it.errorf(line, column, "%s() requires a string filename", name)
		return value.NewInt0()
	}
	content := value.StringifyForConcat(args[1])

	f, err := os.OpenFile(filename.Value, flag, 0644)
	if err != nil {
		it.errorf(line, column, "cannot open file for %sing: %s", name, filename.Value)
		return value.NewInt0()
	}
	defer f.Close()

	n, err := f.WriteString(content)
	if err != nil {
		it.errorf(line, column, "cannot write to file: %s", filename.Value)
		return value.NewInt0()
	}
	return &value.Int{Value: int32(n)}
}

// ------------------------------------------------------------------------------------------
// TIME / HTTP / INPUT HELPERS
// ------------------------------------------------------------------------------------------

func currentUnixSeconds() int32 {
	return int32(time.Now().Unix())
}

// doHTTPRequest performs a blocking HTTP request using Go's standard client, generalizing
// original_source/nac.c's libcurl-based http_request_unix: POST/PUT send body (with a
// JSON content-type when a body is present, matching the source's CURLOPT_HTTPHEADER),
// GET/DELETE send none, redirects are followed by the default client, and the response
// body is printed the way the source's write callback streams curl's response to stdout.
func doHTTPRequest(it *Interpreter, line, column int, method, url, body string, hasBody bool) {
	var reqBody io.Reader
	if hasBody && (method == "POST" || method == "PUT") {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		it.errorf(line, column, "http: %v", err)
		return
	}
	req.Header.Set("User-Agent", "NaC/1.0")
	if hasBody && (method == "POST" || method == "PUT") {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		it.errorf(line, column, "http: %v", err)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	it.Stdout.Write(respBody)
	io.WriteString(it.Stdout, "\n")
}

// readLine reads one line from r, trimming its trailing newline. The ok return is false
// only on immediate EOF with nothing read, matching fgets' failure case in AST_IN. r is
// the Interpreter's single persistent reader, so bytes buffered past the line boundary
// survive for the next in() call instead of being discarded.
func readLine(r *bufio.Reader) (string, bool) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// parseInputLine mirrors AST_IN's strtol-then-strtod-then-string cascade: a line that
// parses entirely as an integer becomes an Int, one that parses entirely as a float
// becomes a Float, anything else is kept as a Str.
func parseInputLine(line string) value.Value {
	if n, err := strconv.ParseInt(line, 10, 32); err == nil {
		return &value.Int{Value: int32(n)}
	}
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		return &value.Float{Value: f}
	}
	return value.NewString(line)
}
