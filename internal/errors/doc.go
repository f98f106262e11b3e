// Package errors provides typed error values for seedtool.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Every
// pipeline failure wraps exactly one of these values.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Input errors: text that violates a format (ErrInvalidAlphabet, ErrDecodeFailure)
//   - Range errors: malformed numeric bounds or sizes (ErrRange, ErrInsufficientEntropy)
//   - Policy errors: format combinations that are refused (ErrNonReversibleChain)
//   - Share errors: threshold recovery failures (ErrInsufficientOrInvalidShares)
//   - Structure errors: tagged payloads of the wrong shape (ErrMetadataTypeMismatch)
//
// # Usage
//
// Return errors from internal packages:
//
//	if low >= high {
//	    return "", errors.ErrRange
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Transform(ctx, opts)
//	if errors.Is(err, serrors.ErrNonReversibleChain) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("card %q: %w", pair, errors.ErrInvalidAlphabet)
package errors
