// ==============================================================================================
// FILE: diag/diag.go
// ==============================================================================================
// PACKAGE: diag
// PURPOSE: The accumulating diagnostic stream shared by the lexer, parser, and evaluator.
//          Generalizes the teacher's parser.Errors() []string into a typed accumulator, and
//          generalizes original_source/nac.c's global error_occurred/error_count pair into
//          a value the CLI can query instead of reading process-wide state (spec §7).
// ==============================================================================================

package diag

import (
	"fmt"
	"io"
)

// Kind classifies a Diagnostic by the pipeline stage that raised it (spec §7's taxonomy).
type Kind string

const (
	Lex  Kind = "lex"
	Parse Kind = "parse"
	Eval Kind = "eval"
	IO   Kind = "io"
)

// Diagnostic is one reported problem: a kind, a 1-based source position, and a message.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d:%d - %s", d.Line, d.Column, d.Message)
}

// MaxErrors is the accumulated-error threshold past which the evaluator stops (spec §7/§8).
const MaxErrors = 10

// Diagnostics accumulates Diagnostic values across an entire run (lex + parse + eval) and
// answers the two questions the CLI's exit code depends on: did anything go wrong, and has
// the run collected enough errors that it should stop early.
type Diagnostics struct {
	items []Diagnostic
}

// Report records a new diagnostic.
func (d *Diagnostics) Report(kind Kind, line, column int, format string, args ...any) {
	d.items = append(d.items, Diagnostic{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

// Count returns the number of diagnostics reported so far.
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// HasErrors reports whether any diagnostic has been recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.items) > 0
}

// Over reports whether the accumulated count exceeds n, the evaluator's stop-after threshold.
func (d *Diagnostics) Over(n int) bool {
	return len(d.items) > n
}

// All returns every diagnostic recorded so far, in report order.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Sink writes every diagnostic to w, one per line, prefixed by its kind.
func (d *Diagnostics) Sink(w io.Writer) {
	for _, item := range d.items {
		fmt.Fprintf(w, "[%s] %s\n", item.Kind, item.String())
	}
}
