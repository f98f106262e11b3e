// Package workflows provides high-level orchestration for seedtool commands.
//
// Workflows coordinate the format registry, the entropy sources and the
// seed value to implement a complete transformation, independent of CLI
// concerns like flag parsing, config files and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Prints the result
//
// Workflows handle everything else:
//   - Validating option bounds and the lossy output rule
//   - Choosing the random source (secure or deterministic)
//   - Decoding, applying metadata overrides and encoding
//
// # Transform
//
// Transform walks a fixed sequence of states:
//
//	unconfigured -> input-selected -> decoded -> metadata-applied -> encoded
//
// The input text is pulled lazily through an InputReader, so formats such
// as random never touch stdin. The reader is released on every exit path.
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package,
// wrapped with context. Use errors.Is() to check for specific conditions:
//
//	result, err := workflows.Transform(ctx, opts)
//	if errors.Is(err, serrors.ErrNonReversibleChain) {
//	    // Suggest --in random
//	}
//
// # Context Usage
//
// Transform accepts a context.Context as its first parameter and checks it
// between states.
package workflows
