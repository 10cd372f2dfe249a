// ==============================================================================================
// FILE: cmd/nac/root.go
// ==============================================================================================
// PURPOSE: The nac CLI's root command. Registers the --verbose flag shared by every
//          subcommand and wires nac <file> to behave like nac run <file>.
// ==============================================================================================

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nac",
	Short: "NaC language interpreter",
	Long: `nac is a tree-walking interpreter for NaC, a small dynamically-typed,
C-family scripting language.

Without a subcommand, nac <file> runs the given script exactly like
nac run <file>.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cmd.Help()
			return errors.New("no script file given")
		}
		return runScript(cmd, args)
	},
}

// Execute runs the root command and returns any error it produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "nac: "+msg+"\n", args...)
	os.Exit(1)
}
