// Package logger provides leveled logging for seedtool.
//
// The logger supports verbosity levels controlled by command-line flags.
// Everything is written to stderr so that stdout carries only the single
// output line of a transformation.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Warnings and errors are always shown.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Always shown
//	Logger.Errorf()         // Always shown
//	Logger.ErrorfAndReturn() // Shown with --debug, returns the formatted error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Decoding %s input", key)
//
// The root command creates a logger in its PersistentPreRun and passes it
// into the workflow options.
package logger
