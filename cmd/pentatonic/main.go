// Package main is the entry point for the pentatonic trainer CLI.
//
// Usage:
//
//	pentatonic [flags] <command> [args]
//
// Commands:
//
//	practice   - Play a scored practice pass
//	demo       - Hear a position played at tempo
//	positions  - List scale positions and unlock state
//	stats      - Show progression statistics
//	target     - Show or set the target tempo
//	reset      - Discard all saved progress
//	devices    - List audio devices
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/fmerenda/Pentatonic-Guitar-Trainer/cmd/pentatonic/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
