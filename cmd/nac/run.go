// ==============================================================================================
// FILE: cmd/nac/run.go
// ==============================================================================================
// PURPOSE: The "nac run <file>" command. Reads a script, lexes/parses/evaluates it, and
//          surfaces any diagnostics. Also backs the implicit default command (nac <file>).
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/evaluator"
	"github.com/amoghasbhardwaj/nac/lexer"
	"github.com/amoghasbhardwaj/nac/parser"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a NaC script",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runScript reads the named file and interprets it, returning a non-nil error
// if the file can't be read or if evaluation produced any diagnostics.
func runScript(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: nac run <file>")
	}
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "running: %s\n", filename)
	}

	d := &diag.Diagnostics{}
	l := lexer.New(string(content))
	p := parser.New(l, d)
	program := p.ParseProgram()

	it := evaluator.New(d, os.Stdin, os.Stdout)
	it.Run(program)

	if d.HasErrors() {
		d.Sink(os.Stderr)
		return fmt.Errorf("%s: %d error(s)", filename, d.Count())
	}
	return nil
}
