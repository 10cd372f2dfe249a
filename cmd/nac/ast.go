// ==============================================================================================
// FILE: cmd/nac/ast.go
// ==============================================================================================
// PURPOSE: The "nac ast <file>" debug command. Dumps the parsed AST's String() form.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/amoghasbhardwaj/nac/diag"
	"github.com/amoghasbhardwaj/nac/lexer"
	"github.com/amoghasbhardwaj/nac/parser"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the parsed AST for a NaC script",
	Args:  cobra.ExactArgs(1),
	RunE:  printParsedAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func printParsedAST(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	d := &diag.Diagnostics{}
	l := lexer.New(string(content))
	p := parser.New(l, d)
	program := p.ParseProgram()

	if d.HasErrors() {
		d.Sink(os.Stderr)
	}
	if str := program.String(); str != "" {
		fmt.Println(str)
	}
	return nil
}
