// ==============================================================================================
// FILE: cmd/nac/main.go
// ==============================================================================================
// PURPOSE: Entry point for the nac command-line tool.
// ==============================================================================================

package main

import "os"

func main() {
	if err := Execute(); err != nil {
		exitWithError("%v", err)
	}
	os.Exit(0)
}
