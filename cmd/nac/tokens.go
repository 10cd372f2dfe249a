// ==============================================================================================
// FILE: cmd/nac/tokens.go
// ==============================================================================================
// PURPOSE: The "nac tokens <file>" debug command. Dumps the raw token stream a file lexes to.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/amoghasbhardwaj/nac/lexer"
	"github.com/amoghasbhardwaj/nac/token"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream for a NaC script",
	Args:  cobra.ExactArgs(1),
	RunE:  printTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func printTokens(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	l := lexer.New(string(content))
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		fmt.Printf("%-15s : %s (line %d, col %d)\n", tok.Type, tok.Literal, tok.Line, tok.Column)
	}
	return nil
}
