package utils

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
