package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
)

// ReadStdin reads all content from r, which is normally os.Stdin.
// Returns an error if r is an interactive terminal (no piped data), is
// blank, or cannot be read.
func ReadStdin(r io.Reader) ([]byte, error) {
	if f, ok := r.(*os.File); ok && IsTerminal(f) {
		return nil, fmt.Errorf("%w: no data provided on stdin (hint: pass INPUT as an argument or pipe it in)", serrors.ErrNoInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: stdin is empty", serrors.ErrNoInput)
	}

	return data, nil
}
