// ==============================================================================================
// FILE: token/token_sanity_test.go
// ==============================================================================================
// PURPOSE: A high-level check to ensure the token system holds up under a simulated program flow.
//          It mimics the sequence of words a lexer might produce.
// ==============================================================================================

package token

import "testing"

// TestSanityFullProgram simulates a small NaC program broken into words
// and verifies that looking them up doesn't cause panics or unexpected behavior.
func TestSanityFullProgram(t *testing.T) {
	// Program representation:
	// fn f(x) { rn x; };
	// out(f(10));
	programWords := []string{
		"fn", "f", "x",
		"rn", "x",
		"out", "f", "10",
	}

	// Note: "10" is a number, not an identifier, but LookupIdent treats anything not in
	// the keyword map as IDENT. The Lexer handles INT/FLOAT literal scanning separately.
	expectedTypes := []TokenType{
		FN, IDENT, IDENT,
		RN, IDENT,
		OUT, IDENT, IDENT,
	}

	for i, word := range programWords {
		got := LookupIdent(word)
		if got != expectedTypes[i] {
			t.Errorf("FAIL: Word index %d (%q). Got %q, expected %q", i, word, got, expectedTypes[i])
		}
	}
}
