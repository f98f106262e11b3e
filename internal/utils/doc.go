// Package utils provides small I/O helpers shared by the pipeline and the
// CLI.
//
// # I/O Utilities
//
//   - ReadStdin: reads all piped data, refusing an interactive terminal
//
// # Terminal Utilities
//
//   - IsTerminal: checks if a file is connected to a terminal
package utils
