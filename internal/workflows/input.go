package workflows

import (
	"errors"
	"io"
	"strings"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/utils"
)

var errInputReleased = errors.New("input reader already released")

// InputReader supplies the transformation input on demand. The argument
// wins when present, otherwise stdin is read once, on first use.
type InputReader struct {
	arg      *string
	stdin    io.Reader
	text     *string
	released bool
}

// NewInputReader creates a reader over arg, falling back to stdin when arg
// is nil.
func NewInputReader(arg *string, stdin io.Reader) *InputReader {
	return &InputReader{arg: arg, stdin: stdin}
}

// Text returns the input text, reading stdin the first time it is needed.
func (r *InputReader) Text() (string, error) {
	if r.released {
		return "", errInputReleased
	}
	if r.text != nil {
		return *r.text, nil
	}

	var text string
	switch {
	case r.arg != nil:
		text = *r.arg
	case r.stdin != nil:
		data, err := utils.ReadStdin(r.stdin)
		if err != nil {
			return "", err
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", serrors.ErrNoInput
	}
	r.text = &text
	return text, nil
}

// Release drops the buffered input and the stdin handle. Later calls to
// Text fail.
func (r *InputReader) Release() {
	r.released = true
	r.text = nil
	r.arg = nil
	r.stdin = nil
}
