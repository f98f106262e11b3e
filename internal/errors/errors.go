package errors

import "errors"

// Input errors indicate text that does not belong to the selected format.
var (
	// ErrInvalidAlphabet indicates input violates a format's character or digit constraints.
	ErrInvalidAlphabet = errors.New("input contains characters outside the format alphabet")

	// ErrInvalidDigit indicates a digit string contains a digit outside [low, high].
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrDecodeFailure indicates a malformed wire token in a specific encoding.
	ErrDecodeFailure = errors.New("failed to decode input")

	// ErrChecksum indicates a decoded payload failed its checksum.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrNoInput indicates no input text was supplied on the command line or stdin.
	ErrNoInput = errors.New("no input provided")

	// ErrUnknownFormat indicates a format selector that names no supported format.
	ErrUnknownFormat = errors.New("unknown format")
)

// Range errors indicate malformed numeric bounds or sizes.
var (
	// ErrRange indicates a numeric option outside its bounds, e.g. low >= high.
	ErrRange = errors.New("value out of range")

	// ErrInsufficientEntropy indicates direct-hash mode was asked for more bytes than the digest provides.
	ErrInsufficientEntropy = errors.New("random number generator limits reached")

	// ErrEmptyPayload indicates a decode produced no seed bytes.
	ErrEmptyPayload = errors.New("seed data is empty")
)

// Policy errors indicate a combination of formats that is refused.
var (
	// ErrNonReversibleChain indicates a lossy output was requested from non-random input.
	ErrNonReversibleChain = errors.New("lossy output format requires random input")

	// ErrNotReproducible indicates a deterministic run asked for an output that draws its own randomness.
	ErrNotReproducible = errors.New("output cannot be made reproducible")
)

// Share errors indicate threshold splitting or recovery failures.
var (
	// ErrInsufficientOrInvalidShares indicates every recovery strategy failed.
	ErrInsufficientOrInvalidShares = errors.New("insufficient or invalid SSKR shares")

	// ErrInvalidGroupSpec indicates a malformed M-of-N group or group threshold.
	ErrInvalidGroupSpec = errors.New("invalid group specification")

	// ErrInvalidSecret indicates a secret whose length cannot be split.
	ErrInvalidSecret = errors.New("secret must be an even number of bytes between 16 and 32")
)

// Structure errors indicate tagged payloads of the wrong shape.
var (
	// ErrMetadataTypeMismatch indicates a structured payload is missing a required tag or has the wrong shape.
	ErrMetadataTypeMismatch = errors.New("structured payload has unexpected type")
)
