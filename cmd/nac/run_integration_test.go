// ==============================================================================================
// FILE: cmd/nac/run_integration_test.go
// ==============================================================================================
// PURPOSE: End-to-end golden tests for the nac CLI. Each case writes a script to a temp
//          file, runs it the same way "nac run" does, and snapshots the printed output
//          alongside whether the run produced any diagnostics.
// ==============================================================================================

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/evaluator"
	"github.com/amoghasbhardwaj/nac/lexer"
	"github.com/amoghasbhardwaj/nac/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// execScript lexes, parses, and evaluates source the same way the run command does,
// returning captured stdout and a summary of any diagnostics produced.
func execScript(t *testing.T, name, source string) string {
	t.Helper()

	d := &diag.Diagnostics{}
	l := lexer.New(source)
	p := parser.New(l, d)
	program := p.ParseProgram()

	var stdout bytes.Buffer
	it := evaluator.New(d, bytes.NewReader(nil), &stdout)
	it.Run(program)

	out := fmt.Sprintf("--- stdout ---\n%s--- errors (%d) ---\n", stdout.String(), d.Count())
	for _, diagnostic := range d.All() {
		out += diagnostic.String() + "\n"
	}
	return out
}

func TestRunIntegration_ArithmeticPrecedence(t *testing.T) {
	out := execScript(t, "arithmetic", `out(2 + 3 * 4);`)
	snaps.MatchSnapshot(t, out)
}

func TestRunIntegration_RecursionArrayReturnIsIndependent(t *testing.T) {
	out := execScript(t, "recursion", `
fn build(n) {
    a = array(1);
    a[0] = n;
    if (n <= 1) {
        rn a;
    };
    inner = build(n - 1);
    rn a;
};
result = build(3);
out(result[0]);
`)
	snaps.MatchSnapshot(t, out)
}

func TestRunIntegration_ForLoopBreak(t *testing.T) {
	out := execScript(t, "forbreak", `
total = 0;
for (i = 0; i < 10; i++) {
    if (i == 3) {
        break;
    };
    total = total + i;
};
out(total);
`)
	snaps.MatchSnapshot(t, out)
}

func TestRunIntegration_ScopeIsolationAcrossCalls(t *testing.T) {
	out := execScript(t, "scope", `
x = 100;
fn mutate() {
    x = 1;
    rn x;
};
out(mutate());
out(x);
`)
	snaps.MatchSnapshot(t, out)
}

func TestRunIntegration_NonShortCircuitLogicalOps(t *testing.T) {
	out := execScript(t, "logical", `
fn bump() {
    out("bump ran");
    rn 1;
};
x = 0 && bump();
out(x);
`)
	snaps.MatchSnapshot(t, out)
}

func TestRunIntegration_StringNumberCoercion(t *testing.T) {
	out := execScript(t, "coercion", `
name = "item";
count = 3;
out(name + " x" + count);
`)
	snaps.MatchSnapshot(t, out)
}

func TestRunIntegration_DivisionByZeroReportsError(t *testing.T) {
	out := execScript(t, "divzero", `x = 5 / 0; out(x);`)
	snaps.MatchSnapshot(t, out)
}

// TestRunIntegration_NoArgumentExitsWithError drives the actual rootCmd (not execScript's
// lex/parse/evaluate shortcut) to pin down spec.md §6's "exit 1 if no argument" requirement:
// Execute() must return a non-nil error when nac is invoked with no script file, since
// main.go's os.Exit(1) path is gated entirely on that error being non-nil.
func TestRunIntegration_NoArgumentExitsWithError(t *testing.T) {
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("expected a non-nil error when nac is invoked with no arguments")
	}
}

func TestRunIntegration_RunScriptFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.nac")
	if err := os.WriteFile(path, []byte(`out(1 + 1);`), 0o644); err != nil {
		t.Fatalf("failed to write temp script: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read temp script: %v", err)
	}
	out := execScript(t, "file", string(content))
	snaps.MatchSnapshot(t, out)
}
