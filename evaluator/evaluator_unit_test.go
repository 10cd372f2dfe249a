// ==============================================================================================
// FILE: evaluator/evaluator_unit_test.go
// ==============================================================================================
// PURPOSE: Unit tests for specific evaluation rules.
//          Validates arithmetic, comparisons, control flow, and basic statement execution
//          in isolation.
// ==============================================================================================

package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/lexer"
	"github.com/amoghasbhardwaj/nac/parser"
	"github.com/amoghasbhardwaj/nac/value"
)

// ----------------------------------------------------------------------------
// TEST HELPERS (shared across the package's test files)
// ----------------------------------------------------------------------------

// run parses and evaluates input against a fresh Interpreter, returning it, its
// diagnostics, and whatever it printed via out().
func run(input string) (*Interpreter, *diag.Diagnostics, string) {
	d := &diag.Diagnostics{}
	l := lexer.New(input)
	p := parser.New(l, d)
	program := p.ParseProgram()

	var stdout bytes.Buffer
	it := New(d, strings.NewReader(""), &stdout)
	it.Run(program)
	return it, d, stdout.String()
}

func lastVar(it *Interpreter, name string) value.Value {
	v, _ := it.Env.Get(name)
	return v
}

func requireInt(t *testing.T, v value.Value, want int32) {
	t.Helper()
	i, ok := v.(*value.Int)
	if !ok {
		t.Fatalf("expected *value.Int, got %T (%v)", v, v)
	}
	if i.Value != want {
		t.Errorf("expected Int(%d), got Int(%d)", want, i.Value)
	}
}

func requireFloat(t *testing.T, v value.Value, want float64) {
	t.Helper()
	f, ok := v.(*value.Float)
	if !ok {
		t.Fatalf("expected *value.Float, got %T (%v)", v, v)
	}
	if f.Value != want {
		t.Errorf("expected Float(%g), got Float(%g)", want, f.Value)
	}
}

func requireStr(t *testing.T, v value.Value, want string) {
	t.Helper()
	s, ok := v.(*value.Str)
	if !ok {
		t.Fatalf("expected *value.Str, got %T (%v)", v, v)
	}
	if s.Value != want {
		t.Errorf("expected Str(%q), got Str(%q)", want, s.Value)
	}
}

// ----------------------------------------------------------------------------
// UNIT TESTS
// ----------------------------------------------------------------------------

func TestArithmeticPrecedence(t *testing.T) {
	it, d, _ := run(`x = 2 + 3 * 4;`)
	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.All())
	}
	requireInt(t, lastVar(it, "x"), 14)
}

func TestFloatWidening(t *testing.T) {
	it, _, _ := run(`x = 5 / 2.0;`)
	requireFloat(t, lastVar(it, "x"), 2.5)
}

func TestIntDivisionTruncates(t *testing.T) {
	it, _, _ := run(`x = 7 / 2;`)
	requireInt(t, lastVar(it, "x"), 3)
}

func TestModuloAlwaysInt(t *testing.T) {
	it, _, _ := run(`x = 7 % 2;`)
	requireInt(t, lastVar(it, "x"), 1)
}

func TestDivisionByZeroReportsAndYieldsZero(t *testing.T) {
	it, d, _ := run(`x = 5 / 0;`)
	if !d.HasErrors() {
		t.Fatalf("expected an error for division by zero")
	}
	requireInt(t, lastVar(it, "x"), 0)
}

func TestModuloByZeroReportsAndYieldsZero(t *testing.T) {
	it, d, _ := run(`x = 5 % 0;`)
	if !d.HasErrors() {
		t.Fatalf("expected an error for modulo by zero")
	}
	requireInt(t, lastVar(it, "x"), 0)
}

func TestStringConcatenation(t *testing.T) {
	it, _, _ := run(`x = "hello " + "world";`)
	requireStr(t, lastVar(it, "x"), "hello world")
}

func TestStringNumberCoercionOnConcat(t *testing.T) {
	it, _, _ := run(`x = "count: " + 5;`)
	requireStr(t, lastVar(it, "x"), "count: 5")
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		input string
		want  int32
	}{
		{"x = 1 < 2;", 1},
		{"x = 1 > 2;", 0},
		{"x = 2 <= 2;", 1},
		{"x = 3 >= 4;", 0},
		{"x = 5 == 5;", 1},
		{"x = 5 != 5;", 0},
	}
	for _, tt := range tests {
		it, _, _ := run(tt.input)
		requireInt(t, lastVar(it, "x"), tt.want)
	}
}

func TestLogicalOperatorsAreNonShortCircuiting(t *testing.T) {
	// Both sides of && and || are evaluated eagerly, so a side-effecting RHS still runs
	// even when the LHS alone would determine the result. bump() signals that it ran by
	// printing, since a write inside a call only lands in the call's own frame.
	it, _, stdout := run(`
fn bump() {
    out("bump ran");
    rn 1;
};
x = 0 && bump();
`)
	if stdout != "bump ran\n" {
		t.Errorf("expected bump() to run and print %q, got %q", "bump ran\n", stdout)
	}
	requireInt(t, lastVar(it, "x"), 0)
}

func TestUnaryMinusPreservesFloatness(t *testing.T) {
	// Negating an identifier (rather than a numeric literal) always goes through the
	// PrefixExpression path, since the lexer's negative-literal heuristic only folds a
	// leading '-' into INT/FLOAT tokens that are immediately followed by a digit.
	it, _, _ := run(`a = 5; b = 5.5; x = -a; y = -b;`)
	requireInt(t, lastVar(it, "x"), -5)
	requireFloat(t, lastVar(it, "y"), -5.5)
}

func TestBangAlwaysYieldsIntZeroOrOne(t *testing.T) {
	it, _, _ := run(`x = !0; y = !5;`)
	requireInt(t, lastVar(it, "x"), 1)
	requireInt(t, lastVar(it, "y"), 0)
}

func TestIfElse(t *testing.T) {
	it, _, _ := run(`
if (1 < 2) {
    x = 10;
} : {
    x = 20;
};
`)
	requireInt(t, lastVar(it, "x"), 10)
}

func TestWhileLoop(t *testing.T) {
	it, _, _ := run(`
x = 0;
while (x < 5) {
    x = x + 1;
};
`)
	requireInt(t, lastVar(it, "x"), 5)
}

func TestForLoopBreak(t *testing.T) {
	it, _, _ := run(`
total = 0;
for (i = 0; i < 10; i++) {
    if (i == 3) {
        break;
    };
    total = total + i;
};
`)
	requireInt(t, lastVar(it, "total"), 3) // 0 + 1 + 2
}

func TestForLoopContinue(t *testing.T) {
	it, _, _ := run(`
total = 0;
for (i = 0; i < 5; i++) {
    if (i == 2) {
        continue;
    };
    total = total + i;
};
`)
	requireInt(t, lastVar(it, "total"), 8) // 0 + 1 + 3 + 4
}

func TestIncDecPreservesFloatness(t *testing.T) {
	it, _, _ := run(`x = 1; x++; y = 1.5; y++;`)
	requireInt(t, lastVar(it, "x"), 2)
	requireFloat(t, lastVar(it, "y"), 2.5)
}

func TestArrayLiteralAndIndexing(t *testing.T) {
	it, _, _ := run(`a = [10, 20, 30]; x = a[1];`)
	requireInt(t, lastVar(it, "x"), 20)
}

func TestArrayNewZeroFills(t *testing.T) {
	it, _, _ := run(`a = array(3); x = a[0] + a[1] + a[2];`)
	requireInt(t, lastVar(it, "x"), 0)
}

func TestArrayIndexAssign(t *testing.T) {
	it, _, _ := run(`a = array(3); a[1] = 42; x = a[1];`)
	requireInt(t, lastVar(it, "x"), 42)
}

func TestArrayOutOfRangeReportsAndYieldsZero(t *testing.T) {
	it, d, _ := run(`a = array(2); x = a[5];`)
	if !d.HasErrors() {
		t.Fatalf("expected out-of-range error")
	}
	requireInt(t, lastVar(it, "x"), 0)
}

func TestOutPrintsValue(t *testing.T) {
	_, _, stdout := run(`out(42);`)
	if strings.TrimSpace(stdout) != "42" {
		t.Errorf("expected stdout %q, got %q", "42", stdout)
	}
}

func TestUndefinedVariableReportsAndYieldsZero(t *testing.T) {
	it, d, _ := run(`x = y;`)
	if !d.HasErrors() {
		t.Fatalf("expected undefined-variable error")
	}
	requireInt(t, lastVar(it, "x"), 0)
}

func TestFunctionCallArityMismatchReportsError(t *testing.T) {
	_, d, _ := run(`
fn add(a, b) { rn a + b; };
x = add(1);
`)
	if !d.HasErrors() {
		t.Fatalf("expected arity-mismatch error")
	}
}

func TestBuiltinMathFunctions(t *testing.T) {
	it, _, _ := run(`x = sqrt(16); y = abs(-3); z = abs(-3.5);`)
	requireFloat(t, lastVar(it, "x"), 4)
	requireInt(t, lastVar(it, "y"), 3)
	requireFloat(t, lastVar(it, "z"), 3.5)
}

func TestBuiltinStringFunctions(t *testing.T) {
	it, _, _ := run(`
x = upper("abc");
y = length("hello");
z = substr("hello world", 6, 5);
`)
	requireStr(t, lastVar(it, "x"), "ABC")
	requireInt(t, lastVar(it, "y"), 5)
	requireStr(t, lastVar(it, "z"), "world")
}

func TestBuiltinArrayFunctions(t *testing.T) {
	it, _, _ := run(`
a = [1, 2, 3];
x = first(a);
y = last(a);
b = reverse(a);
z = b[0];
`)
	requireInt(t, lastVar(it, "x"), 1)
	requireInt(t, lastVar(it, "y"), 3)
	requireInt(t, lastVar(it, "z"), 3)
}

func TestStringTruncationAtMaxLen(t *testing.T) {
	long := strings.Repeat("a", value.MaxStringLen+10)
	it, _, _ := run(`x = "` + long + `";`)
	s := lastVar(it, "x").(*value.Str)
	if len(s.Value) != value.MaxStringLen-1 {
		t.Errorf("expected string truncated to %d bytes, got %d", value.MaxStringLen-1, len(s.Value))
	}
}
